package dto

import (
	"time"

	"medsched/internal/domains/room/model"
	"medsched/shared/constant"
	gModel "medsched/shared/model"
	"medsched/shared/timezone"
)

type CreateRoomRequest struct {
	ID       string `json:"id"       validate:"required,max=40"`
	Name     string `json:"name"     validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,gte=1"`
	Category string `json:"category" validate:"required,max=40"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	now := timezone.Now()

	return model.Room{
		ID:        c.ID,
		Name:      c.Name,
		Capacity:  c.Capacity,
		Category:  c.Category,
		Available: true,
		Equipment: []string{},
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type ScheduleRoomRequest struct {
	Datetime string `json:"datetime" validate:"required"`
}

func (s *ScheduleRoomRequest) ToTime() (time.Time, error) {
	return timezone.Parse(constant.DateFormat, s.Datetime)
}

type AddEquipmentRequest struct {
	Item string `json:"item" validate:"required,max=100"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Category    string   `json:"category"`
	Available   bool     `json:"available"`
	Equipment   []string `json:"equipment"`
	NextBooking string   `json:"next_booking,omitempty"`
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.ID = room.ID
	r.Name = room.Name
	r.Capacity = room.Capacity
	r.Category = room.Category
	r.Available = room.Available
	r.Equipment = room.Equipment

	r.NextBooking = ""
	if room.NextBooking != nil {
		r.NextBooking = timezone.Format(*room.NextBooking, constant.DateFormat)
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.TotalData = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
