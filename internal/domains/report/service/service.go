package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"medsched/config"
	"medsched/infras/otel"
	appointmentService "medsched/internal/domains/appointment/service"
	"medsched/internal/domains/report/model"
	"medsched/internal/domains/report/model/dto"
	roomService "medsched/internal/domains/room/service"
	"medsched/internal/storage"
	"medsched/shared"
	"medsched/shared/cache"
	"medsched/shared/constant"
	"medsched/shared/failure"
	"medsched/shared/timezone"
)

// StatusCachePrefix keys the cached status report; mutations elsewhere in the
// engine clear everything under it.
const StatusCachePrefix = "report:status"

type Report interface {
	Status(ctx context.Context, format model.Format) (dto.ReportResponse, error)
	Get(ctx context.Context, id string) (dto.ReportResponse, error)
	GetAll(ctx context.Context) (dto.GetReportsResponse, error)
}

type serviceImpl struct {
	store        storage.Store[model.Report]
	rooms        roomService.Room
	appointments appointmentService.Appointment
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	store storage.Store[model.Report],
	rooms roomService.Room,
	appointments appointmentService.Appointment,
	cfg *config.Config,
	cache cache.RedisCache,
	ot otel.Otel,
) Report {
	return &serviceImpl{
		store:        store,
		rooms:        rooms,
		appointments: appointments,
		cfg:          cfg,
		cache:        cache,
		otel:         ot,
	}
}

// Status renders the current room and appointment state in the requested
// format, persists the rendered report and caches it briefly so dashboard
// polling does not regenerate it on every hit.
func (s *serviceImpl) Status(ctx context.Context, format model.Format) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StatusReport")
	defer scope.End()
	defer scope.TraceIfError(err)

	renderer, err := NewRenderer(format)
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(StatusCachePrefix, string(format))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for status report")

		return res, nil
	}

	content, err := renderer.Render(s.snapshot(ctx))
	if err != nil {
		log.Error().Err(err).Msg("failed to render status report")

		return res, fmt.Errorf("failed to render status report: %w", err)
	}

	now := timezone.Now()
	report := model.Report{
		ID:      uuid.NewString(),
		Title:   "Scheduling Status Report",
		Format:  format,
		Content: content,
	}
	report.CreatedAt = now
	report.ModifiedAt = now

	if err = s.store.Save(ctx, report); err != nil {
		log.Error().Err(err).Str("report", report.ID).Msg("failed to persist status report")

		return res, fmt.Errorf("failed to persist status report: %w", err)
	}

	res.FromModel(report)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save status report to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) snapshot(ctx context.Context) StatusData {
	rooms := s.rooms.Snapshot(ctx)
	appointments := s.appointments.Snapshot(ctx)

	available := 0
	for _, room := range rooms {
		if room.Available {
			available++
		}
	}

	counts := make(map[string]int)
	for _, appointment := range appointments {
		counts[string(appointment.Status)]++
	}

	return StatusData{
		GeneratedAt:    timezone.Format(timezone.Now(), constant.DateFormat),
		TotalRooms:     len(rooms),
		AvailableRooms: available,
		Rooms:          rooms,
		Appointments:   appointments,
		CountsByStatus: counts,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReport")
	defer scope.End()
	defer scope.TraceIfError(err)

	report, err := s.store.Load(ctx, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return res, failure.NotFound(fmt.Sprintf("report %s not found", id)) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("report", id).Msg("failed to get report")

		return res, fmt.Errorf("failed to get report: %w", err)
	}

	res.FromModel(report)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetReportsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReports")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.store.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reports")

		return res, fmt.Errorf("failed to get reports: %w", err)
	}

	sort.Slice(models, func(i, j int) bool {
		if !models[i].CreatedAt.Equal(models[j].CreatedAt) {
			return models[i].CreatedAt.Before(models[j].CreatedAt)
		}

		return models[i].ID < models[j].ID
	})

	res.FromModels(models)

	return res, nil
}
