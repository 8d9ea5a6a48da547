package model

import (
	"time"

	"medsched/shared/model"
)

const (
	EntityName = "room"

	CategorySurgery      = "SURGERY"
	CategoryConsultation = "CONSULTATION"
	CategoryEmergency    = "EMERGENCY"
)

type Room struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Capacity    int        `json:"capacity"`
	Category    string     `json:"category"`
	Available   bool       `json:"available"`
	Equipment   []string   `json:"equipment"`
	NextBooking *time.Time `json:"next_booking,omitempty"`
	model.Metadata
}

func (r Room) StorageID() string {
	return r.ID
}

func (r Room) EntityName() string {
	return EntityName
}

// Schedule marks the room occupied for the given time. Availability and the
// next-booking reference always flip together.
func (r *Room) Schedule(at time.Time) {
	r.Available = false
	r.NextBooking = &at
}

// Release makes the room available again and clears the next booking.
func (r *Room) Release() {
	r.Available = true
	r.NextBooking = nil
}

// AddEquipment appends unconditionally; duplicates are allowed.
func (r *Room) AddEquipment(item string) {
	r.Equipment = append(r.Equipment, item)
}
