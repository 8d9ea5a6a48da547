package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"medsched/config"
	"medsched/infras/otel"
	"medsched/internal/domains/room/model"
	"medsched/internal/domains/room/model/dto"
	"medsched/internal/storage"
	"medsched/shared/constant"
	"medsched/shared/failure"
)

// defaultRooms is the registry's bootstrap set, persisted on first start
// against an empty backend.
var defaultRooms = []struct {
	id       string
	name     string
	capacity int
	category string
}{
	{"ROOM001", "Surgery Theater", 10, model.CategorySurgery},
	{"ROOM002", "Consultation Office", 4, model.CategoryConsultation},
	{"ROOM003", "Emergency Bay", 8, model.CategoryEmergency},
}

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, availableOnly bool) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Schedule(ctx context.Context, id string, at time.Time) error
	Release(ctx context.Context, id string) error
	AddEquipment(ctx context.Context, id, item string) error

	// Snapshot returns copies of every registered room, for reporting.
	Snapshot(ctx context.Context) []model.Room

	// Degraded reports whether the registry is serving rooms that could not
	// be persisted during bootstrap.
	Degraded() bool
}

type serviceImpl struct {
	store storage.Store[model.Room]
	cfg   *config.Config
	otel  otel.Otel

	mu       sync.RWMutex
	rooms    map[string]model.Room
	degraded bool
}

// New builds the room registry, hydrating the index from the backend and
// seeding the default rooms when the backend is empty. A backend that cannot
// take the seed does not abort startup; the registry keeps the defaults
// in memory and flags itself degraded.
func New(store storage.Store[model.Room], cfg *config.Config, ot otel.Otel) (Room, error) {
	s := &serviceImpl{
		store: store,
		cfg:   cfg,
		otel:  ot,
		rooms: make(map[string]model.Room),
	}

	if err := s.hydrate(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *serviceImpl) hydrate(ctx context.Context) error {
	existing, err := s.store.LoadAll(ctx)
	if err != nil {
		if !storage.IsRetryable(err) {
			return fmt.Errorf("failed to load rooms: %w", err)
		}

		log.Warn().Err(err).Msg("room backend unreachable during bootstrap, continuing degraded")
		s.degraded = true
	}

	for _, room := range existing {
		s.rooms[room.ID] = room
	}

	if len(s.rooms) > 0 {
		return nil
	}

	now := time.Now()
	for _, d := range defaultRooms {
		room := model.Room{
			ID:        d.id,
			Name:      d.name,
			Capacity:  d.capacity,
			Category:  d.category,
			Available: true,
			Equipment: []string{},
		}
		room.CreatedAt = now
		room.ModifiedAt = now

		if err := s.store.Save(ctx, room); err != nil {
			log.Warn().Err(err).Str("room", room.ID).Msg("failed to persist default room, keeping it in memory only")
			s.degraded = true
		}

		s.rooms[room.ID] = room
	}

	log.Info().Int("count", len(s.rooms)).Bool("degraded", s.degraded).Msg("room registry seeded")

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	room := req.ToModel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room.ID]; ok {
		return failure.Duplicate(fmt.Sprintf("room %s already exists", room.ID)) // nolint:wrapcheck
	}

	if err = s.store.Save(ctx, room); err != nil {
		if storage.IsAlreadyExists(err) {
			return failure.Duplicate(fmt.Sprintf("room %s already exists", room.ID)) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("room", room.ID).Msg("failed to create room")

		return fmt.Errorf("failed to create room: %w", err)
	}

	s.rooms[room.ID] = room

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, availableOnly bool) (res dto.GetRoomsResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRooms")
	defer scope.End()

	s.mu.RLock()
	models := make([]model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if availableOnly && !room.Available {
			continue
		}

		models = append(models, room)
	}
	s.mu.RUnlock()

	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.RLock()
	room, ok := s.rooms[id]
	s.mu.RUnlock()

	if !ok {
		return res, failure.NotFound(fmt.Sprintf("room %s not found", id)) // nolint:wrapcheck
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Schedule(ctx context.Context, id string, at time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ScheduleRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return failure.NotFound(fmt.Sprintf("room %s not found", id)) // nolint:wrapcheck
	}

	if !room.Available {
		return failure.RoomUnavailable(fmt.Sprintf("room %s is not available", id)) // nolint:wrapcheck
	}

	room.Schedule(at)
	room.ModifiedAt = time.Now()

	if err = s.store.Update(ctx, room); err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to schedule room")

		return fmt.Errorf("failed to schedule room: %w", err)
	}

	s.rooms[id] = room

	return nil
}

func (s *serviceImpl) Release(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return failure.NotFound(fmt.Sprintf("room %s not found", id)) // nolint:wrapcheck
	}

	room.Release()
	room.ModifiedAt = time.Now()

	if err = s.store.Update(ctx, room); err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to release room")

		return fmt.Errorf("failed to release room: %w", err)
	}

	s.rooms[id] = room

	return nil
}

func (s *serviceImpl) AddEquipment(ctx context.Context, id, item string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddEquipment")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return failure.NotFound(fmt.Sprintf("room %s not found", id)) // nolint:wrapcheck
	}

	// Detach the slice before appending so a failed persist leaves the
	// indexed room untouched.
	room.Equipment = append([]string{}, room.Equipment...)
	room.AddEquipment(item)
	room.ModifiedAt = time.Now()

	if err = s.store.Update(ctx, room); err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to add equipment")

		return fmt.Errorf("failed to add equipment: %w", err)
	}

	s.rooms[id] = room

	return nil
}

func (s *serviceImpl) Snapshot(ctx context.Context) []model.Room {
	s.mu.RLock()
	models := make([]model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		models = append(models, room)
	}
	s.mu.RUnlock()

	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	return models
}

func (s *serviceImpl) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.degraded
}
