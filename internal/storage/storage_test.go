package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recruit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.LocalBaseDir())

	key, err := store.Save(context.Background(), []byte("%PDF-1.4"), SaveOptions{Category: "Resumes", Extension: ".PDF"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "resumes/"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	other, err := store.Save(context.Background(), []byte("x"), SaveOptions{Category: "resumes", Extension: "pdf"})
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestLocalStorageRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), nil, SaveOptions{})
	assert.ErrorIs(t, err, errEmptyPayload)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, []byte("x"), SaveOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStorage(t *testing.T) {
	store, err := NewStorage(config.Config{StorageType: "LOCAL", StorageLocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	_, err = NewStorage(config.Config{StorageType: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(config.Config{StorageType: TypeS3})
	assert.Error(t, err)

	_, err = NewStorage(config.Config{StorageType: TypeMinIO})
	assert.Error(t, err)
}

func TestObjectPathHelpers(t *testing.T) {
	assert.Equal(t, "resumes-2024_a", sanitizePathSegment(" Resumes-2024_a/../ "))
	assert.Equal(t, "bin", normalizeExtension(""))
	assert.Equal(t, "docx", normalizeExtension(".DOCX"))
	assert.Equal(t, "uploads/resumes/a.pdf", joinPrefix("/uploads/", "/resumes/a.pdf"))
	assert.Equal(t, "resumes/a.pdf", joinPrefix("", "resumes/a.pdf"))

	key := buildObjectPath("resumes", "My CV", "pdf")
	assert.True(t, strings.HasSuffix(key, "/my-cv.pdf"), key)

	assert.Equal(t, "application/pdf", contentTypeFor(SaveOptions{Extension: "pdf"}))
	assert.Equal(t, "application/msword", contentTypeFor(SaveOptions{Extension: "doc", ContentType: "application/msword"}))
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base string
		key  string
		want string
	}{
		{"/files", "resumes/a.pdf", "/files/resumes/a.pdf"},
		{"/files/", "/resumes/a.pdf", "/files/resumes/a.pdf"},
		{"https://cdn.example.com", "resumes/a.pdf", "https://cdn.example.com/resumes/a.pdf"},
		{"", "resumes/a.pdf", "resumes/a.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicURL(tt.base, tt.key))
	}
}
