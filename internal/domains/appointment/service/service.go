package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"medsched/config"
	"medsched/infras/otel"
	"medsched/internal/domains/appointment/model"
	"medsched/internal/domains/appointment/model/dto"
	"medsched/internal/storage"
	"medsched/shared/constant"
	"medsched/shared/failure"
	"medsched/shared/timezone"
)

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetByPatient(ctx context.Context, patientRef string) (dto.GetAppointmentsResponse, error)
	GetByProvider(ctx context.Context, providerRef string) (dto.GetAppointmentsResponse, error)
	GetActive(ctx context.Context) (dto.GetAppointmentsResponse, error)
	Confirm(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Complete(ctx context.Context, id string) (dto.AppointmentResponse, error)

	// Snapshot returns copies of every indexed appointment, for reporting.
	Snapshot(ctx context.Context) []model.Appointment
}

type serviceImpl struct {
	store storage.Store[model.Appointment]
	cfg   *config.Config
	otel  otel.Otel

	mu           sync.RWMutex
	appointments map[string]model.Appointment
}

// New builds the scheduler and hydrates its index from the backend. A
// transient backend failure during hydration leaves the index empty rather
// than aborting startup.
func New(store storage.Store[model.Appointment], cfg *config.Config, ot otel.Otel) (Appointment, error) {
	s := &serviceImpl{
		store:        store,
		cfg:          cfg,
		otel:         ot,
		appointments: make(map[string]model.Appointment),
	}

	existing, err := store.LoadAll(context.Background())
	if err != nil {
		if !storage.IsRetryable(err) {
			return nil, fmt.Errorf("failed to load appointments: %w", err)
		}

		log.Warn().Err(err).Msg("appointment backend unreachable during bootstrap, starting with an empty index")
	}

	for _, appointment := range existing {
		s.appointments[appointment.ID] = appointment
	}

	return s, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.buildAppointment(req)
	if err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Conflicts only count against active appointments, and only on the
	// exact timestamp. The room check covers the whole index before the
	// provider check runs, so a request colliding on both always reports
	// the room.
	ids := s.sortedIDs()

	for _, id := range ids {
		other := s.appointments[id]
		if other.Active() && other.Datetime.Equal(appointment.Datetime) && other.RoomID == appointment.RoomID {
			return res, failure.RoomConflict(fmt.Sprintf( // nolint:wrapcheck
				"room %s already has an active appointment at %s",
				appointment.RoomID, timezone.Format(appointment.Datetime, constant.DateFormat)))
		}
	}

	for _, id := range ids {
		other := s.appointments[id]
		if other.Active() && other.Datetime.Equal(appointment.Datetime) && other.ProviderRef == appointment.ProviderRef {
			return res, failure.ProviderConflict(fmt.Sprintf( // nolint:wrapcheck
				"provider %s already has an active appointment at %s",
				appointment.ProviderRef, timezone.Format(appointment.Datetime, constant.DateFormat)))
		}
	}

	if err = s.store.Save(ctx, appointment); err != nil {
		log.Error().Err(err).Str("appointment", appointment.ID).Msg("failed to create appointment")

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.appointments[appointment.ID] = appointment

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) buildAppointment(req dto.CreateAppointmentRequest) (model.Appointment, error) {
	var appointment model.Appointment

	switch {
	case strings.TrimSpace(req.PatientRef) == constant.Empty:
		return appointment, failure.Validation("patient_ref", "must not be empty") // nolint:wrapcheck
	case strings.TrimSpace(req.ProviderRef) == constant.Empty:
		return appointment, failure.Validation("provider_ref", "must not be empty") // nolint:wrapcheck
	case strings.TrimSpace(req.RoomID) == constant.Empty:
		return appointment, failure.Validation("room_id", "must not be empty") // nolint:wrapcheck
	case strings.TrimSpace(req.Type) == constant.Empty:
		return appointment, failure.Validation("type", "must not be empty") // nolint:wrapcheck
	}

	at, err := req.ToTime()
	if err != nil {
		return appointment, failure.Validation("datetime", fmt.Sprintf("invalid format: %v", err)) // nolint:wrapcheck
	}

	if !at.After(timezone.Now()) {
		return appointment, failure.Validation("datetime", "must be in the future") // nolint:wrapcheck
	}

	now := timezone.Now()
	appointment = model.Appointment{
		ID:          newAppointmentID(),
		PatientRef:  req.PatientRef,
		ProviderRef: req.ProviderRef,
		RoomID:      req.RoomID,
		Datetime:    at,
		Type:        req.Type,
		Notes:       req.Notes,
		Status:      model.StatusScheduled,
	}
	appointment.CreatedAt = now
	appointment.ModifiedAt = now

	return appointment, nil
}

func newAppointmentID() string {
	return model.IDPrefix + strings.ToUpper(uuid.NewString()[:8])
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.RLock()
	appointment, ok := s.appointments[id]
	s.mu.RUnlock()

	if !ok {
		return res, failure.NotFound(fmt.Sprintf("appointment %s not found", id)) // nolint:wrapcheck
	}

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) GetByPatient(ctx context.Context, patientRef string) (dto.GetAppointmentsResponse, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAppointmentsByPatient")
	defer scope.End()

	return s.collect(func(a model.Appointment) bool { return a.PatientRef == patientRef }), nil
}

func (s *serviceImpl) GetByProvider(ctx context.Context, providerRef string) (dto.GetAppointmentsResponse, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAppointmentsByProvider")
	defer scope.End()

	return s.collect(func(a model.Appointment) bool { return a.ProviderRef == providerRef }), nil
}

func (s *serviceImpl) GetActive(ctx context.Context) (dto.GetAppointmentsResponse, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActiveAppointments")
	defer scope.End()

	return s.collect(model.Appointment.Active), nil
}

func (s *serviceImpl) collect(keep func(model.Appointment) bool) (res dto.GetAppointmentsResponse) {
	s.mu.RLock()
	models := make([]model.Appointment, 0, len(s.appointments))
	for _, appointment := range s.appointments {
		if keep(appointment) {
			models = append(models, appointment)
		}
	}
	s.mu.RUnlock()

	sort.Slice(models, func(i, j int) bool {
		if !models[i].Datetime.Equal(models[j].Datetime) {
			return models[i].Datetime.Before(models[j].Datetime)
		}

		return models[i].ID < models[j].ID
	})

	res.FromModels(models)

	return res
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (dto.AppointmentResponse, error) {
	return s.transition(ctx, id, "Confirm", (*model.Appointment).Confirm)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (dto.AppointmentResponse, error) {
	return s.transition(ctx, id, "Cancel", (*model.Appointment).Cancel)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (dto.AppointmentResponse, error) {
	return s.transition(ctx, id, "Complete", (*model.Appointment).Complete)
}

func (s *serviceImpl) transition(ctx context.Context, id, name string, apply func(*model.Appointment) error) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+name+"Appointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, ok := s.appointments[id]
	if !ok {
		return res, failure.NotFound(fmt.Sprintf("appointment %s not found", id)) // nolint:wrapcheck
	}

	// The transition runs on a copy; the index only moves once the new
	// state is persisted.
	if err = apply(&appointment); err != nil {
		return res, err
	}

	appointment.ModifiedAt = timezone.Now()

	if err = s.store.Update(ctx, appointment); err != nil {
		log.Error().Err(err).Str("appointment", id).Msg("failed to persist appointment transition")

		return res, fmt.Errorf("failed to persist appointment transition: %w", err)
	}

	s.appointments[id] = appointment

	res.FromModel(appointment)

	return res, nil
}

// sortedIDs keeps conflict detection deterministic when several appointments
// collide on the same timestamp.
func (s *serviceImpl) sortedIDs() []string {
	ids := make([]string, 0, len(s.appointments))
	for id := range s.appointments {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

func (s *serviceImpl) Snapshot(ctx context.Context) []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	models := make([]model.Appointment, 0, len(s.appointments))
	for _, appointment := range s.appointments {
		models = append(models, appointment)
	}

	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	return models
}
