package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"medsched/config"
	"medsched/infras/otel/mocks"
	appointmentModel "medsched/internal/domains/appointment/model"
	appointmentDto "medsched/internal/domains/appointment/model/dto"
	appointmentService "medsched/internal/domains/appointment/service"
	reportModel "medsched/internal/domains/report/model"
	"medsched/internal/domains/report/service"
	roomModel "medsched/internal/domains/room/model"
	roomService "medsched/internal/domains/room/service"
	"medsched/internal/storage"
	cacheMocks "medsched/shared/cache/mocks"
	"medsched/shared/constant"
	"medsched/shared/failure"
)

type fixture struct {
	svc          service.Report
	store        storage.Store[reportModel.Report]
	appointments appointmentService.Appointment
	cache        *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T, ctrl *gomock.Controller) fixture {
	t.Helper()

	ot := mocks.NewOtel()
	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	rooms, err := roomService.New(storage.NewMemoryStore[roomModel.Room](ot), cfg, ot)
	require.NoError(t, err)

	appointments, err := appointmentService.New(storage.NewMemoryStore[appointmentModel.Appointment](ot), cfg, ot)
	require.NoError(t, err)

	store := storage.NewMemoryStore[reportModel.Report](ot)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	return fixture{
		svc:          service.New(store, rooms, appointments, cfg, mockCache, ot),
		store:        store,
		appointments: appointments,
		cache:        mockCache,
	}
}

func TestReportService_StatusText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := f.appointments.Create(context.Background(), appointmentDto.CreateAppointmentRequest{
		PatientRef:  "PAT-1",
		ProviderRef: "DR-A",
		RoomID:      "ROOM001",
		Datetime:    time.Now().Add(24 * time.Hour).Format(constant.DateFormat),
		Type:        "CHECKUP",
	})
	require.NoError(t, err)

	res, err := f.svc.Status(context.Background(), reportModel.FormatText)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, string(reportModel.FormatText), res.Format)
	assert.Contains(t, res.Content, "SCHEDULING STATUS REPORT")
	assert.Contains(t, res.Content, "ROOM001")
	assert.Contains(t, res.Content, "3/3 available")
	assert.Contains(t, res.Content, "SCHEDULED: 1")

	// The rendered report is persisted.
	persisted, err := f.store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted, 1)
}

func TestReportService_StatusHTML(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := f.svc.Status(context.Background(), reportModel.FormatHTML)
	require.NoError(t, err)

	assert.Contains(t, res.Content, "<!DOCTYPE html>")
	assert.Contains(t, res.Content, "<td>ROOM002</td>")
}

func TestReportService_StatusUnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	_, err := f.svc.Status(context.Background(), reportModel.Format("pdf"))

	require.Error(t, err)
	assert.Equal(t, failure.KindBadRequest, failure.GetKind(err))
}

func TestReportService_StatusCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Status(context.Background(), reportModel.FormatText)
	require.NoError(t, err)

	// Nothing is rendered or persisted on a hit.
	persisted, err := f.store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestReportService_GetAndGetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	first, err := f.svc.Status(context.Background(), reportModel.FormatText)
	require.NoError(t, err)

	second, err := f.svc.Status(context.Background(), reportModel.FormatHTML)
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Content, got.Content)

	_, err = f.svc.Get(context.Background(), "missing")
	assert.Equal(t, failure.KindNotFound, failure.GetKind(err))

	all, err := f.svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalData)
	assert.NotEqual(t, first.ID, second.ID)
}
