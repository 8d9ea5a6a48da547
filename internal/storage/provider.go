package storage

import (
	"time"

	"github.com/rs/zerolog/log"

	"medsched/config"
	"medsched/infras/otel"
	appointmentModel "medsched/internal/domains/appointment/model"
	reportModel "medsched/internal/domains/report/model"
	roomModel "medsched/internal/domains/room/model"
)

// defaultRemoteFailureRate matches the simulated database's historical
// injection band of roughly 3-5% of calls.
const defaultRemoteFailureRate = 0.04

// Stores bundles one gateway per entity kind, all bound to the same backend.
type Stores struct {
	Kind         Kind
	Rooms        Store[roomModel.Room]
	Appointments Store[appointmentModel.Appointment]
	Reports      Store[reportModel.Report]
}

// NewStores resolves the backend from configuration and builds the gateway
// set. The memory backend is the default when nothing is configured.
func NewStores(cfg *config.Config, ot otel.Otel) (*Stores, error) {
	return NewStoresWithKind(ResolveKind("", cfg.Storage.Backend), cfg, ot)
}

// NewStoresWithKind builds the gateway set for an explicitly chosen backend.
func NewStoresWithKind(kind Kind, cfg *config.Config, ot otel.Otel) (*Stores, error) {
	rooms, err := newStore[roomModel.Room](kind, cfg, ot)
	if err != nil {
		return nil, err
	}

	appointments, err := newStore[appointmentModel.Appointment](kind, cfg, ot)
	if err != nil {
		return nil, err
	}

	reports, err := newStore[reportModel.Report](kind, cfg, ot)
	if err != nil {
		return nil, err
	}

	log.Info().Str("backend", string(kind)).Msg("storage gateways initialized")

	return &Stores{
		Kind:         kind,
		Rooms:        rooms,
		Appointments: appointments,
		Reports:      reports,
	}, nil
}

func newStore[T Entity](kind Kind, cfg *config.Config, ot otel.Otel) (Store[T], error) {
	switch kind {
	case KindFile:
		return NewFileStore[T](cfg.Storage.File.Dir, cfg.Storage.File.Ext, ot)
	case KindRemote:
		return NewRemoteStore[T](remoteOptions(cfg), ot), nil
	default:
		return NewMemoryStore[T](ot), nil
	}
}

func remoteOptions(cfg *config.Config) RemoteOptions {
	seed := cfg.Storage.Remote.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// A negative rate disables injection entirely.
	rate := cfg.Storage.Remote.FailureRate
	if rate == 0 {
		rate = defaultRemoteFailureRate
	}
	if rate < 0 {
		rate = 0
	}

	return RemoteOptions{
		Injector:     NewRandomInjector(seed, rate),
		Latency:      time.Duration(cfg.Storage.Remote.LatencyMs) * time.Millisecond,
		ProtectedIDs: cfg.Storage.Remote.ProtectedIDs,
	}
}
