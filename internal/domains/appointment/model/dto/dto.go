package dto

import (
	"time"

	"medsched/internal/domains/appointment/model"
	"medsched/shared/constant"
	"medsched/shared/timezone"
)

type CreateAppointmentRequest struct {
	PatientRef  string `json:"patient_ref"  validate:"required,max=100"`
	ProviderRef string `json:"provider_ref" validate:"required,max=100"`
	RoomID      string `json:"room_id"      validate:"required,max=40"`
	Datetime    string `json:"datetime"     validate:"required"`
	Type        string `json:"type"         validate:"required,max=100"`
	Notes       string `json:"notes"        validate:"omitempty,max=500"`
}

func (c *CreateAppointmentRequest) ToTime() (time.Time, error) {
	return timezone.Parse(constant.DateFormat, c.Datetime)
}

type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientRef  string `json:"patient_ref"`
	ProviderRef string `json:"provider_ref"`
	RoomID      string `json:"room_id"`
	Datetime    string `json:"datetime"`
	Type        string `json:"type"`
	Notes       string `json:"notes"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (r *AppointmentResponse) FromModel(appointment model.Appointment) {
	r.ID = appointment.ID
	r.PatientRef = appointment.PatientRef
	r.ProviderRef = appointment.ProviderRef
	r.RoomID = appointment.RoomID
	r.Datetime = timezone.Format(appointment.Datetime, constant.DateFormat)
	r.Type = appointment.Type
	r.Notes = appointment.Notes
	r.Status = string(appointment.Status)
	r.CreatedAt = timezone.Format(appointment.CreatedAt, constant.DateFormat)
	r.UpdatedAt = timezone.Format(appointment.ModifiedAt, constant.DateFormat)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment) {
	r.TotalData = len(models)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}
