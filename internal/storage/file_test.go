package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsched/infras/otel/mocks"
	"medsched/internal/storage"
)

func newFileStore(t *testing.T) (storage.Store[note], string) {
	t.Helper()

	dir := t.TempDir()

	store, err := storage.NewFileStore[note](dir, "json", mocks.NewOtel())
	require.NoError(t, err)

	return store, filepath.Join(dir, "notes")
}

func TestFileStore_CreatesEntityDirectory(t *testing.T) {
	_, dir := newFileStore(t)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_InitFailsOnUnusableDir(t *testing.T) {
	dir := t.TempDir()

	// A regular file where the entity directory should go.
	blocked := filepath.Join(dir, "notes")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	_, err := storage.NewFileStore[note](dir, "json", mocks.NewOtel())
	assert.Error(t, err)
}

func TestFileStore_SaveWritesOneFilePerEntity(t *testing.T) {
	store, dir := newFileStore(t)

	require.NoError(t, store.Save(context.Background(), note{ID: "n1", Body: "hello"}))

	data, err := os.ReadFile(filepath.Join(dir, "n1.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"n1","body":"hello"}`, string(data))
}

func TestFileStore_SaveRefusesOverwrite(t *testing.T) {
	store, _ := newFileStore(t)

	require.NoError(t, store.Save(context.Background(), note{ID: "n1", Body: "original"}))

	err := store.Save(context.Background(), note{ID: "n1", Body: "clobber"})
	assert.True(t, storage.IsAlreadyExists(err))

	got, err := store.Load(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, "original", got.Body)
}

func TestFileStore_LoadCorruptedFile(t *testing.T) {
	store, dir := newFileStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	_, err := store.Load(context.Background(), "bad")
	assert.Equal(t, storage.ErrKindCorrupted, storage.KindOf(err))
}

func TestFileStore_LoadAllSkipsCorruptedFiles(t *testing.T) {
	store, dir := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, note{ID: "good", Body: "kept"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not an entity"), 0o644))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)

	require.Len(t, all, 1)
	assert.Equal(t, "good", all[0].ID)
}

func TestFileStore_DefaultExtension(t *testing.T) {
	dir := t.TempDir()

	store, err := storage.NewFileStore[note](dir, "", mocks.NewOtel())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), note{ID: "n1"}))

	_, err = os.Stat(filepath.Join(dir, "notes", "n1.json"))
	assert.NoError(t, err)
}
