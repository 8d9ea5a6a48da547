package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"

	"medsched/config"
	"medsched/di"
	appointmentDto "medsched/internal/domains/appointment/model/dto"
	roomModel "medsched/internal/domains/room/model"
	roomDto "medsched/internal/domains/room/model/dto"
	"medsched/internal/scheduling"
	"medsched/shared/constant"
	"medsched/shared/logger"
)

var appointmentTypes = []string{
	"CONSULTATION",
	"CHECKUP",
	"SURGERY",
	"FOLLOW_UP",
	"IMAGING",
}

var roomCategories = []string{
	roomModel.CategorySurgery,
	roomModel.CategoryConsultation,
	roomModel.CategoryEmergency,
}

func main() {
	rooms := flag.Int("rooms", 5, "number of extra rooms to create")
	appointments := flag.Int("appointments", 40, "number of appointments to book")
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	engine, err := di.InitializeEngine()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize scheduling engine")
	}

	gofakeit.Seed(time.Now().UnixNano())

	ctx := context.Background()

	seedRooms(ctx, engine, *rooms)
	seedAppointments(ctx, engine, *appointments)

	log.Info().Msg("seed complete")
}

func seedRooms(ctx context.Context, engine *scheduling.Facade, count int) {
	for i := 0; i < count; i++ {
		req := roomDto.CreateRoomRequest{
			ID:       fmt.Sprintf("ROOM%03d", 100+i),
			Name:     gofakeit.AdjectiveDescriptive() + " " + gofakeit.NounCommon(),
			Capacity: gofakeit.Number(2, 12),
			Category: roomCategories[gofakeit.Number(0, len(roomCategories)-1)],
		}

		if err := engine.CreateRoom(ctx, req); err != nil {
			log.Warn().Err(err).Str("room", req.ID).Msg("skipping room")

			continue
		}
	}

	log.Info().Int("count", count).Msg("rooms seeded")
}

func seedAppointments(ctx context.Context, engine *scheduling.Facade, count int) {
	rooms, err := engine.GetRooms(ctx, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list rooms")
	}

	booked := 0
	for i := 0; i < count; i++ {
		room := rooms.Rooms[gofakeit.Number(0, len(rooms.Rooms)-1)]
		slot := time.Now().
			AddDate(0, 0, gofakeit.Number(1, 30)).
			Truncate(time.Hour).
			Add(time.Duration(gofakeit.Number(8, 17)) * time.Hour)

		req := appointmentDto.CreateAppointmentRequest{
			PatientRef:  "PAT-" + gofakeit.DigitN(6),
			ProviderRef: "DR-" + gofakeit.LastName(),
			RoomID:      room.ID,
			Datetime:    slot.Format(constant.DateFormat),
			Type:        appointmentTypes[gofakeit.Number(0, len(appointmentTypes)-1)],
			Notes:       gofakeit.Sentence(6),
		}

		if _, err := engine.CreateAppointment(ctx, req); err != nil {
			// Collisions on the same room and slot are expected with
			// random data.
			log.Warn().Err(err).Msg("skipping appointment")

			continue
		}

		booked++
	}

	log.Info().Int("booked", booked).Int("requested", count).Msg("appointments seeded")
}
