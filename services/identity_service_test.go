package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/dto"
	"kartvizit.link/models"
	"kartvizit.link/pkg/apperr"
)

func TestSyncCreatesUserAndOrganization(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	result, err := svc.Sync(context.Background(), dto.SyncRequest{
		ID:            "ext-user-1",
		Email:         "jane@example.com",
		DisplayName:   "Jane Doe",
		EmailVerified: true,
	})
	require.NoError(t, err)

	// Sağlayıcının ID'si primary key olarak korunur.
	assert.Equal(t, "ext-user-1", result.User.ID)
	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.True(t, result.User.EmailVerified)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotZero(t, result.OrganizationID)

	var org models.Organization
	require.NoError(t, db.First(&org, result.OrganizationID).Error)
	assert.Equal(t, "Jane Doe's Organization", org.Name)
	assert.Equal(t, "ext-user-1", org.OwnerID)

	// Organizasyon sahibi adına oluşturulur; audit kolonu bunu gösterir.
	require.NotNil(t, org.CreatedBy)
	assert.Equal(t, "ext-user-1", *org.CreatedBy)

	claims, err := svc.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ext-user-1", claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestSyncIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	req := dto.SyncRequest{
		ID:          "ext-user-1",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
	}

	first, err := svc.Sync(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Sync(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, first.OrganizationID, second.OrganizationID)

	// Çağrı başına en fazla bir kullanıcı ve bir organizasyon satırı.
	var userCount, orgCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Organization{}).Count(&orgCount).Error)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, orgCount)
}

func TestSyncVerificationIsMonotonic(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	req := dto.SyncRequest{
		ID:            "ext-user-1",
		Email:         "jane@example.com",
		DisplayName:   "Jane Doe",
		EmailVerified: true,
	}
	_, err := svc.Sync(context.Background(), req)
	require.NoError(t, err)

	// Doğrulanmış bir hesap sonraki sync'te false gelse bile geri alınmaz.
	req.EmailVerified = false
	result, err := svc.Sync(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.User.EmailVerified)
}

func TestSyncMatchesByEmailWhenIDUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	first, err := svc.Sync(context.Background(), dto.SyncRequest{
		ID:          "ext-user-1",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
	})
	require.NoError(t, err)

	// Bilinmeyen ID + bilinen e-posta: e-posta eşleşmesi kazanır,
	// yeni kullanıcı açılmaz.
	second, err := svc.Sync(context.Background(), dto.SyncRequest{
		ID:          "ext-user-2",
		Email:       "jane@example.com",
		DisplayName: "Jane D.",
	})
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Jane D.", second.User.DisplayName)

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 1, userCount)
}

func TestSyncValidationFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	_, err := svc.Sync(context.Background(), dto.SyncRequest{
		ID:          "ext-user-1",
		Email:       "gecersiz-eposta",
		DisplayName: "Jane Doe",
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:       "ali@example.com",
		DisplayName: "Ali Veli",
		Password:    "cok-gizli-sifre",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.User.ID)
	assert.NotZero(t, registered.OrganizationID)

	loggedIn, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ali@example.com",
		Password: "cok-gizli-sifre",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.Equal(t, registered.OrganizationID, loggedIn.OrganizationID)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	req := dto.RegisterRequest{
		Email:       "ali@example.com",
		DisplayName: "Ali Veli",
		Password:    "cok-gizli-sifre",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.True(t, apperr.IsConflict(err))
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:       "ali@example.com",
		DisplayName: "Ali Veli",
		Password:    "cok-gizli-sifre",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ali@example.com",
		Password: "yanlis-sifre",
	})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	_, err := svc.ParseAccessToken("bu-bir-token-degil")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestResolveOwningOrganizationRepairsMissingOrg(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIdentityService(t, db)

	// Organizasyonsuz kullanıcı (yarım kalmış bir sync'i temsil eder).
	user := &models.User{
		ID:           "orphan-user",
		Email:        "orphan@example.com",
		DisplayName:  "Orphan",
		PasswordHash: "x",
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)

	org, err := svc.ResolveOwningOrganization(context.Background(), "orphan-user")
	require.NoError(t, err)
	assert.Equal(t, "orphan-user", org.OwnerID)

	// İkinci çözümleme aynı organizasyonu döndürür, yenisini açmaz.
	again, err := svc.ResolveOwningOrganization(context.Background(), "orphan-user")
	require.NoError(t, err)
	assert.Equal(t, org.ID, again.ID)
}
