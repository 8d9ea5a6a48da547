// Package scheduling exposes the clinic's rooms, appointments and reports
// behind one entry point bound to a single storage backend per process.
package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medsched/config"
	"medsched/infras/otel"
	appointmentDto "medsched/internal/domains/appointment/model/dto"
	appointmentService "medsched/internal/domains/appointment/service"
	reportModel "medsched/internal/domains/report/model"
	reportDto "medsched/internal/domains/report/model/dto"
	reportService "medsched/internal/domains/report/service"
	roomDto "medsched/internal/domains/room/model/dto"
	roomService "medsched/internal/domains/room/service"
	"medsched/internal/storage"
	"medsched/shared"
	"medsched/shared/cache"
	"medsched/shared/constant"
	"medsched/shared/failure"
)

var (
	bindMu       sync.Mutex
	boundBackend storage.Kind
	bound        bool
)

// Facade fronts the room registry, the appointment scheduler and the report
// generator. All of them share the backend the facade was built against.
type Facade struct {
	backend      storage.Kind
	rooms        roomService.Room
	appointments appointmentService.Appointment
	reports      reportService.Report
	cache        cache.RedisCache
	otel         otel.Otel

	invalidations sync.WaitGroup
}

// New builds the facade on the given gateway set. The first construction in a
// process pins the backend; building another facade against a different
// backend is refused so two engines never split state across stores.
func New(stores *storage.Stores, cfg *config.Config, redisCache cache.RedisCache, ot otel.Otel) (*Facade, error) {
	bindMu.Lock()
	defer bindMu.Unlock()

	if bound && boundBackend != stores.Kind {
		return nil, failure.BackendMismatch(fmt.Sprintf( // nolint:wrapcheck
			"scheduling engine already bound to the %s backend, refusing %s", boundBackend, stores.Kind))
	}

	rooms, err := roomService.New(stores.Rooms, cfg, ot)
	if err != nil {
		return nil, fmt.Errorf("failed to build room registry: %w", err)
	}

	appointments, err := appointmentService.New(stores.Appointments, cfg, ot)
	if err != nil {
		return nil, fmt.Errorf("failed to build appointment scheduler: %w", err)
	}

	reports := reportService.New(stores.Reports, rooms, appointments, cfg, redisCache, ot)

	boundBackend = stores.Kind
	bound = true

	return &Facade{
		backend:      stores.Kind,
		rooms:        rooms,
		appointments: appointments,
		reports:      reports,
		cache:        redisCache,
		otel:         ot,
	}, nil
}

// Reset clears the process-wide backend binding. Tests only.
func Reset() {
	bindMu.Lock()
	defer bindMu.Unlock()

	bound = false
	boundBackend = storage.Kind("")
}

// Backend reports which storage backend the facade is bound to.
func (f *Facade) Backend() storage.Kind {
	return f.backend
}

// Degraded reports whether the room registry is running on unpersisted
// bootstrap data.
func (f *Facade) Degraded() bool {
	return f.rooms.Degraded()
}

func (f *Facade) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return f.otel.NewScope(ctx, constant.OtelFacadeScopeName, constant.OtelFacadeScopeName+"."+op)
}

// invalidateStatus drops cached status reports after a state change.
func (f *Facade) invalidateStatus(ctx context.Context) {
	f.invalidations.Add(1)

	go func() {
		defer f.invalidations.Done()

		shared.InvalidateCaches(context.WithoutCancel(ctx), f.cache, reportService.StatusCachePrefix)
	}()
}

// Flush blocks until every in-flight cache invalidation has finished.
func (f *Facade) Flush() {
	f.invalidations.Wait()
}

func (f *Facade) CreateRoom(ctx context.Context, req roomDto.CreateRoomRequest) error {
	ctx, scope := f.scope(ctx, "CreateRoom")
	defer scope.End()

	if err := f.rooms.Create(ctx, req); err != nil {
		return err
	}

	f.invalidateStatus(ctx)

	return nil
}

func (f *Facade) GetRooms(ctx context.Context, availableOnly bool) (roomDto.GetRoomsResponse, error) {
	ctx, scope := f.scope(ctx, "GetRooms")
	defer scope.End()

	return f.rooms.GetAll(ctx, availableOnly)
}

func (f *Facade) GetRoom(ctx context.Context, id string) (roomDto.RoomResponse, error) {
	ctx, scope := f.scope(ctx, "GetRoom")
	defer scope.End()

	return f.rooms.Get(ctx, id)
}

func (f *Facade) ScheduleRoom(ctx context.Context, id string, at time.Time) error {
	ctx, scope := f.scope(ctx, "ScheduleRoom")
	defer scope.End()

	if err := f.rooms.Schedule(ctx, id, at); err != nil {
		return err
	}

	f.invalidateStatus(ctx)

	return nil
}

func (f *Facade) ReleaseRoom(ctx context.Context, id string) error {
	ctx, scope := f.scope(ctx, "ReleaseRoom")
	defer scope.End()

	if err := f.rooms.Release(ctx, id); err != nil {
		return err
	}

	f.invalidateStatus(ctx)

	return nil
}

func (f *Facade) AddRoomEquipment(ctx context.Context, id, item string) error {
	ctx, scope := f.scope(ctx, "AddRoomEquipment")
	defer scope.End()

	if err := f.rooms.AddEquipment(ctx, id, item); err != nil {
		return err
	}

	f.invalidateStatus(ctx)

	return nil
}

func (f *Facade) CreateAppointment(ctx context.Context, req appointmentDto.CreateAppointmentRequest) (appointmentDto.AppointmentResponse, error) {
	ctx, scope := f.scope(ctx, "CreateAppointment")
	defer scope.End()

	res, err := f.appointments.Create(ctx, req)
	if err != nil {
		return res, err
	}

	f.invalidateStatus(ctx)

	return res, nil
}

func (f *Facade) GetAppointment(ctx context.Context, id string) (appointmentDto.AppointmentResponse, error) {
	ctx, scope := f.scope(ctx, "GetAppointment")
	defer scope.End()

	return f.appointments.Get(ctx, id)
}

func (f *Facade) GetAppointmentsByPatient(ctx context.Context, patientRef string) (appointmentDto.GetAppointmentsResponse, error) {
	ctx, scope := f.scope(ctx, "GetAppointmentsByPatient")
	defer scope.End()

	return f.appointments.GetByPatient(ctx, patientRef)
}

func (f *Facade) GetAppointmentsByProvider(ctx context.Context, providerRef string) (appointmentDto.GetAppointmentsResponse, error) {
	ctx, scope := f.scope(ctx, "GetAppointmentsByProvider")
	defer scope.End()

	return f.appointments.GetByProvider(ctx, providerRef)
}

func (f *Facade) GetActiveAppointments(ctx context.Context) (appointmentDto.GetAppointmentsResponse, error) {
	ctx, scope := f.scope(ctx, "GetActiveAppointments")
	defer scope.End()

	return f.appointments.GetActive(ctx)
}

func (f *Facade) ConfirmAppointment(ctx context.Context, id string) (appointmentDto.AppointmentResponse, error) {
	return f.transition(ctx, "ConfirmAppointment", id, f.appointments.Confirm)
}

func (f *Facade) CancelAppointment(ctx context.Context, id string) (appointmentDto.AppointmentResponse, error) {
	return f.transition(ctx, "CancelAppointment", id, f.appointments.Cancel)
}

func (f *Facade) CompleteAppointment(ctx context.Context, id string) (appointmentDto.AppointmentResponse, error) {
	return f.transition(ctx, "CompleteAppointment", id, f.appointments.Complete)
}

func (f *Facade) transition(
	ctx context.Context,
	op, id string,
	apply func(ctx context.Context, id string) (appointmentDto.AppointmentResponse, error),
) (appointmentDto.AppointmentResponse, error) {
	ctx, scope := f.scope(ctx, op)
	defer scope.End()

	res, err := apply(ctx, id)
	if err != nil {
		return res, err
	}

	f.invalidateStatus(ctx)

	return res, nil
}

func (f *Facade) StatusReport(ctx context.Context, format reportModel.Format) (reportDto.ReportResponse, error) {
	ctx, scope := f.scope(ctx, "StatusReport")
	defer scope.End()

	return f.reports.Status(ctx, format)
}

func (f *Facade) GetReport(ctx context.Context, id string) (reportDto.ReportResponse, error) {
	ctx, scope := f.scope(ctx, "GetReport")
	defer scope.End()

	return f.reports.Get(ctx, id)
}

func (f *Facade) GetReports(ctx context.Context) (reportDto.GetReportsResponse, error) {
	ctx, scope := f.scope(ctx, "GetReports")
	defer scope.End()

	return f.reports.GetAll(ctx)
}
