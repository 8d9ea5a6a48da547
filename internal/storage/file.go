package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"medsched/infras/otel"
	"medsched/shared/constant"
)

const defaultFileExt = "json"

// fileStore persists one file per entity, named <id>.<ext>, inside a
// directory dedicated to the entity kind. Save never overwrites: callers that
// need to change an existing entity go through Update.
type fileStore[T Entity] struct {
	dir  string
	ext  string
	otel otel.Otel
}

// NewFileStore creates the entity directory if needed. Initialization fails
// when the directory cannot be created or accessed.
func NewFileStore[T Entity](baseDir, ext string, ot otel.Otel) (Store[T], error) {
	if ext == "" {
		ext = defaultFileExt
	}

	dir := filepath.Join(baseDir, entityName[T]()+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrapFileError("init "+entityName[T]()+" store", "", err)
	}

	return &fileStore[T]{
		dir:  dir,
		ext:  strings.TrimPrefix(ext, "."),
		otel: ot,
	}, nil
}

func (s *fileStore[T]) path(id string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.%s", id, s.ext))
}

func (s *fileStore[T]) Save(ctx context.Context, entity T) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Save")
	defer scope.End()

	id := entity.StorageID()
	op := "save " + entityName[T]()

	data, err := json.Marshal(entity)
	if err != nil {
		return newError(ErrKindInternal, op, KindFile, id, err)
	}

	file, err := os.OpenFile(s.path(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return newError(ErrKindAlreadyExists, op, KindFile, id, err)
		}

		return wrapFileError(op, id, err)
	}

	if _, err = file.Write(data); err != nil {
		file.Close()

		return wrapFileError(op, id, err)
	}

	if err = file.Close(); err != nil {
		return wrapFileError(op, id, err)
	}

	return nil
}

func (s *fileStore[T]) Update(ctx context.Context, entity T) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Update")
	defer scope.End()

	id := entity.StorageID()
	op := "update " + entityName[T]()

	if _, err := os.Stat(s.path(id)); err != nil {
		return wrapFileError(op, id, err)
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return newError(ErrKindInternal, op, KindFile, id, err)
	}

	if err := os.WriteFile(s.path(id), data, 0o644); err != nil {
		return wrapFileError(op, id, err)
	}

	return nil
}

func (s *fileStore[T]) Load(ctx context.Context, id string) (T, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Load")
	defer scope.End()

	var zero T

	op := "load " + entityName[T]()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return zero, wrapFileError(op, id, err)
	}

	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		return zero, newError(ErrKindCorrupted, op, KindFile, id, err)
	}

	return entity, nil
}

// LoadAll reads every entity file in the directory. A single malformed file is
// skipped with a warning instead of failing the whole listing.
func (s *fileStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".LoadAll")
	defer scope.End()

	op := "load all " + entityName[T]() + "s"

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, wrapFileError(op, "", err)
	}

	suffix := "." + s.ext
	all := make([]T, 0, len(files))

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), suffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, file.Name()))
		if err != nil {
			return nil, wrapFileError(op, strings.TrimSuffix(file.Name(), suffix), err)
		}

		var entity T
		if err := json.Unmarshal(data, &entity); err != nil {
			log.Warn().Err(err).Str("file", file.Name()).Msg("skipping corrupted entity file")

			continue
		}

		all = append(all, entity)
	}

	return all, nil
}

func (s *fileStore[T]) Delete(ctx context.Context, id string) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Delete")
	defer scope.End()

	op := "delete " + entityName[T]()

	if err := os.Remove(s.path(id)); err != nil {
		return wrapFileError(op, id, err)
	}

	return nil
}

// wrapFileError maps OS-level failures into the common persistence error
// family: missing files, permission problems and storage exhaustion each get
// their own kind.
func wrapFileError(op, id string, err error) *Error {
	kind := ErrKindInternal

	switch {
	case errors.Is(err, os.ErrNotExist):
		kind = ErrKindNotFound
	case errors.Is(err, os.ErrPermission):
		kind = ErrKindPermission
	case errors.Is(err, syscall.ENOSPC):
		kind = ErrKindInsufficientSpace
	}

	return newError(kind, op, KindFile, id, err)
}
