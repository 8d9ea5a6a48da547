package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
	"strings"
)

// Kind identifies a storage backend implementation.
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindRemote Kind = "remote"
)

// Entity is anything the gateway can persist. Implementations must be
// JSON-marshalable value types.
type Entity interface {
	StorageID() string
	EntityName() string
}

// Store is the storage-agnostic persistence gateway for one entity kind.
//
// Save creates; whether a duplicate id is accepted is backend-specific (the
// in-memory backend upserts, the file and remote backends reject with an
// already-exists error). Update overwrites an existing entity and fails with
// a not-found error when it is missing. LoadAll skips entries that cannot be
// decoded so that read paths degrade instead of failing wholesale.
type Store[T Entity] interface {
	Save(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	Load(ctx context.Context, id string) (T, error)
	LoadAll(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id string) error
}

// ResolveKind picks the backend: an explicit override wins, then the
// configured value, then the in-memory default. Unknown values fall back to
// memory as well so a typo never selects a different persistent backend.
func ResolveKind(explicit, configured string) Kind {
	for _, candidate := range []string{explicit, configured} {
		switch Kind(strings.ToLower(strings.TrimSpace(candidate))) {
		case KindMemory:
			return KindMemory
		case KindFile:
			return KindFile
		case KindRemote:
			return KindRemote
		}
	}

	return KindMemory
}

func entityName[T Entity]() string {
	var zero T

	return zero.EntityName()
}
