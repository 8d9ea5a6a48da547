package storage

import (
	"context"
	"sync"
	"time"

	"medsched/infras/otel"
	"medsched/shared/constant"
)

// RemoteStore simulates a remote database: an in-memory map behind
// configuration and availability switches, a per-call latency, a fault
// injector and a set of protected ids that refuse deletion. It exposes the
// toggles so operational tooling and tests can drive the failure modes.
type RemoteStore[T Entity] struct {
	mu        sync.RWMutex
	entities  map[string]T
	injector  Injector
	latency   time.Duration
	protected map[string]struct{}

	configured bool
	available  bool

	otel otel.Otel
}

type RemoteOptions struct {
	Injector     Injector
	Latency      time.Duration
	ProtectedIDs []string
}

func NewRemoteStore[T Entity](opts RemoteOptions, ot otel.Otel) *RemoteStore[T] {
	injector := opts.Injector
	if injector == nil {
		injector = NoFaults()
	}

	protected := make(map[string]struct{}, len(opts.ProtectedIDs))
	for _, id := range opts.ProtectedIDs {
		protected[id] = struct{}{}
	}

	return &RemoteStore[T]{
		entities:   make(map[string]T),
		injector:   injector,
		latency:    opts.Latency,
		protected:  protected,
		configured: true,
		available:  true,
		otel:       ot,
	}
}

// SetConfigured toggles the simulated backend configuration state.
func (s *RemoteStore[T]) SetConfigured(configured bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configured = configured
}

// SetAvailable toggles the simulated backend availability.
func (s *RemoteStore[T]) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.available = available
}

// preflight runs the shared failure ladder: configuration, availability, then
// the fault injector.
func (s *RemoteStore[T]) preflight(op, id string) error {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	if !s.configured {
		return newError(ErrKindConfiguration, op, KindRemote, id, nil)
	}

	if !s.available {
		return newError(ErrKindUnavailable, op, KindRemote, id, nil)
	}

	if fault := s.injector.Next(op); fault != nil {
		fault.EntityID = id

		return fault
	}

	return nil
}

func (s *RemoteStore[T]) Save(ctx context.Context, entity T) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Save")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.StorageID()
	op := "save " + entityName[T]()

	if err := s.preflight(op, id); err != nil {
		return err
	}

	if _, ok := s.entities[id]; ok {
		return newError(ErrKindAlreadyExists, op, KindRemote, id, nil)
	}

	s.entities[id] = entity

	return nil
}

func (s *RemoteStore[T]) Update(ctx context.Context, entity T) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Update")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.StorageID()
	op := "update " + entityName[T]()

	if err := s.preflight(op, id); err != nil {
		return err
	}

	if _, ok := s.entities[id]; !ok {
		return newError(ErrKindNotFound, op, KindRemote, id, nil)
	}

	s.entities[id] = entity

	return nil
}

func (s *RemoteStore[T]) Load(ctx context.Context, id string) (T, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Load")
	defer scope.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T

	op := "load " + entityName[T]()

	if err := s.preflight(op, id); err != nil {
		return zero, err
	}

	entity, ok := s.entities[id]
	if !ok {
		return zero, newError(ErrKindNotFound, op, KindRemote, id, nil)
	}

	return entity, nil
}

func (s *RemoteStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".LoadAll")
	defer scope.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	op := "load all " + entityName[T]() + "s"

	if err := s.preflight(op, ""); err != nil {
		return nil, err
	}

	all := make([]T, 0, len(s.entities))
	for _, entity := range s.entities {
		all = append(all, entity)
	}

	return all, nil
}

func (s *RemoteStore[T]) Delete(ctx context.Context, id string) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Delete")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	op := "delete " + entityName[T]()

	if err := s.preflight(op, id); err != nil {
		return err
	}

	if _, ok := s.protected[id]; ok {
		return newError(ErrKindIntegrity, op, KindRemote, id, nil)
	}

	if _, ok := s.entities[id]; !ok {
		return newError(ErrKindNotFound, op, KindRemote, id, nil)
	}

	delete(s.entities, id)

	return nil
}
