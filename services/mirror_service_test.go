package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/dto"
	"kartvizit.link/pkg/apperr"
)

func TestRegenerateWritesArtifact(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "u1", "u1@example.com")
	svc, mirrorDir := newTestVCardService(t, db)

	spec := baseSpec(t, db, "acme")
	spec.PublishStatus = strPtr("PUBLISHED")
	spec.Services = &[]dto.ServiceSpec{{Title: "Danışmanlık", Order: 1}}
	_, err := svc.Create(context.Background(), org.ID, spec)
	require.NoError(t, err)

	mirror, err := NewMirrorService(db, mirrorDir)
	require.NoError(t, err)

	path, err := mirror.Regenerate(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(mirrorDir, "acme", "index.html"), path)
	assert.Equal(t, path, mirror.ArtifactPath("acme"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Jane Doe")
	assert.Contains(t, string(content), "Danışmanlık")
}

func TestRegenerateDraftSlugNotFound(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "u1", "u1@example.com")
	svc, mirrorDir := newTestVCardService(t, db)

	_, err := svc.Create(context.Background(), org.ID, baseSpec(t, db, "taslak"))
	require.NoError(t, err)

	mirror, err := NewMirrorService(db, mirrorDir)
	require.NoError(t, err)

	// DRAFT kart public yoldan görünmez; mirror da üretilmez.
	_, err = mirror.Regenerate(context.Background(), "taslak")
	assert.True(t, apperr.IsNotFound(err))

	_, err = mirror.Regenerate(context.Background(), "hic-yok")
	assert.True(t, apperr.IsNotFound(err))
}

func TestRegenerateAllIsolatesFailures(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "u1", "u1@example.com")
	svc, mirrorDir := newTestVCardService(t, db)

	for _, slug := range []string{"kart-a", "kart-b"} {
		spec := baseSpec(t, db, slug)
		spec.PublishStatus = strPtr("PUBLISHED")
		_, err := svc.Create(context.Background(), org.ID, spec)
		require.NoError(t, err)
	}

	mirror, err := NewMirrorService(db, mirrorDir)
	require.NoError(t, err)

	// kart-a'nın dizin yolunu düz dosyayla işgal et: MkdirAll başarısız olur.
	require.NoError(t, os.RemoveAll(filepath.Join(mirrorDir, "kart-a")))
	require.NoError(t, os.WriteFile(filepath.Join(mirrorDir, "kart-a"), []byte("engel"), 0o644))

	results, err := mirror.RegenerateAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	bySlug := map[string]MirrorResult{}
	for _, r := range results {
		bySlug[r.Slug] = r
	}

	// kart-a başarısız ama kart-b etkilenmez.
	assert.False(t, bySlug["kart-a"].Success)
	assert.NotEmpty(t, bySlug["kart-a"].Error)
	assert.True(t, bySlug["kart-b"].Success)

	content, err := os.ReadFile(filepath.Join(mirrorDir, "kart-b", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Jane Doe")
}

func TestRegenerateAllSurfacesListingFailure(t *testing.T) {
	db := newTestDB(t)
	mirrorDir := t.TempDir()

	mirror, err := NewMirrorService(db, mirrorDir)
	require.NoError(t, err)

	// Veritabanı erişilemez: "yayında kart yok" değil, altyapı hatası döner.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	results, err := mirror.RegenerateAll(context.Background())
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, apperr.ErrDependency))
}

func TestRegenerateOverwritesPreviousArtifact(t *testing.T) {
	db := newTestDB(t)
	org := seedOrganization(t, db, "u1", "u1@example.com")
	svc, mirrorDir := newTestVCardService(t, db)

	spec := baseSpec(t, db, "acme")
	spec.PublishStatus = strPtr("PUBLISHED")
	card, err := svc.Create(context.Background(), org.ID, spec)
	require.NoError(t, err)

	mirror, err := NewMirrorService(db, mirrorDir)
	require.NoError(t, err)

	_, err = mirror.Regenerate(context.Background(), "acme")
	require.NoError(t, err)

	// İçerik değişir, artifact aynı yolda yenilenir.
	_, err = svc.Update(context.Background(), card.ID, org.ID, dto.VCardSpec{
		Name: strPtr("Janet Doe"),
	})
	require.NoError(t, err)

	path, err := mirror.Regenerate(context.Background(), "acme")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Janet Doe")
	assert.NotContains(t, string(content), "Jane Doe")
}