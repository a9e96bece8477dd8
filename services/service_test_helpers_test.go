package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kartvizit.link/database"
	"kartvizit.link/database/seeders"
	"kartvizit.link/models"
)

const testJWTSecret = "test-secret-key"

// newTestDB her test için izole bir in-memory sqlite veritabanı açar,
// şemayı migrate eder ve varsayılan şablonları yükler.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// In-memory sqlite bağlantı başına ayrı veritabanı verir; havuz tek
	// bağlantıya sabitlenir ki tüm sorgular aynı şemayı görsün.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrationsInOrder(db))
	require.NoError(t, seeders.SeedTemplates(db))
	return db
}

// newTestIdentityService test veritabanı üzerinde bir IdentityService kurar.
func newTestIdentityService(t *testing.T, db *gorm.DB) IIdentityService {
	t.Helper()
	return NewIdentityService(db, testJWTSecret, time.Hour)
}

// seedOrganization test için bir kullanıcı + organizasyon çifti oluşturur.
func seedOrganization(t *testing.T, db *gorm.DB, userID, email string) *models.Organization {
	t.Helper()

	user := &models.User{
		ID:           userID,
		Email:        email,
		DisplayName:  "Test Kullanıcı",
		PasswordHash: "x",
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)

	org := &models.Organization{
		Name:    "Test Organizasyonu",
		OwnerID: user.ID,
	}
	require.NoError(t, db.Create(org).Error)
	return org
}

// firstTemplateID seed'lenmiş ilk şablonun ID'sini döndürür.
func firstTemplateID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	var tpl models.Template
	require.NoError(t, db.Order("id asc").First(&tpl).Error)
	return tpl.ID
}

func strPtr(s string) *string { return &s }
func uintPtr(u uint) *uint    { return &u }

// syncDispatch mirror tetiklemesini test içinde senkron çalıştırır.
func syncDispatch(mirror IMirrorService) func(slug string) {
	return func(slug string) {
		_, _ = mirror.Regenerate(context.Background(), slug)
	}
}
