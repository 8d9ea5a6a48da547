package model

import (
	"time"

	"medsched/shared/failure"
	"medsched/shared/model"
)

const (
	EntityName = "appointment"

	// IDPrefix is prepended to every generated appointment id.
	IDPrefix = "AGD-"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Active reports whether the status still occupies its room/provider slot.
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// Terminal reports whether no further transition can leave this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Appointment struct {
	ID          string    `json:"id"`
	PatientRef  string    `json:"patient_ref"`
	ProviderRef string    `json:"provider_ref"`
	RoomID      string    `json:"room_id"`
	Datetime    time.Time `json:"datetime"`
	Type        string    `json:"type"`
	Notes       string    `json:"notes"`
	Status      Status    `json:"status"`
	model.Metadata
}

func (a Appointment) StorageID() string {
	return a.ID
}

func (a Appointment) EntityName() string {
	return EntityName
}

// Active reports whether the appointment still occupies its slot.
func (a Appointment) Active() bool {
	return a.Status.Active()
}

// Confirm moves SCHEDULED to CONFIRMED.
func (a *Appointment) Confirm() error {
	if a.Status != StatusScheduled {
		return failure.InvalidTransition("only a scheduled appointment can be confirmed, current status: " + string(a.Status))
	}

	a.Status = StatusConfirmed

	return nil
}

// Cancel moves SCHEDULED or CONFIRMED to CANCELLED. Terminal states stay put.
func (a *Appointment) Cancel() error {
	if a.Status.Terminal() {
		return failure.InvalidTransition("appointment is already " + string(a.Status))
	}

	a.Status = StatusCancelled

	return nil
}

// Complete moves CONFIRMED to COMPLETED.
func (a *Appointment) Complete() error {
	if a.Status != StatusConfirmed {
		return failure.InvalidTransition("only a confirmed appointment can be completed, current status: " + string(a.Status))
	}

	a.Status = StatusCompleted

	return nil
}
