package storage

import (
	"context"
	"sync"

	"medsched/infras/otel"
	"medsched/shared/constant"
)

// memoryStore keeps entities in a process-local map. Save overwrites or
// inserts; the only failures it can surface are resource-exhaustion style
// internal errors, so in practice every call succeeds.
type memoryStore[T Entity] struct {
	mu       sync.RWMutex
	entities map[string]T
	otel     otel.Otel
}

func NewMemoryStore[T Entity](ot otel.Otel) Store[T] {
	return &memoryStore[T]{
		entities: make(map[string]T),
		otel:     ot,
	}
}

func (s *memoryStore[T]) Save(ctx context.Context, entity T) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Save")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities[entity.StorageID()] = entity

	return nil
}

func (s *memoryStore[T]) Update(ctx context.Context, entity T) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Update")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.StorageID()
	if _, ok := s.entities[id]; !ok {
		return newError(ErrKindNotFound, "update "+entityName[T](), KindMemory, id, nil)
	}

	s.entities[id] = entity

	return nil
}

func (s *memoryStore[T]) Load(ctx context.Context, id string) (T, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Load")
	defer scope.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[id]
	if !ok {
		var zero T

		return zero, newError(ErrKindNotFound, "load "+entityName[T](), KindMemory, id, nil)
	}

	return entity, nil
}

func (s *memoryStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".LoadAll")
	defer scope.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]T, 0, len(s.entities))
	for _, entity := range s.entities {
		all = append(all, entity)
	}

	return all, nil
}

func (s *memoryStore[T]) Delete(ctx context.Context, id string) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Delete")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return newError(ErrKindNotFound, "delete "+entityName[T](), KindMemory, id, nil)
	}

	delete(s.entities, id)

	return nil
}
