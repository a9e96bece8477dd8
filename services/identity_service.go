package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/dto"
	"kartvizit.link/models"
	"kartvizit.link/pkg/apperr"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"
)

// IdentityServiceError özel servis hataları
type IdentityServiceError string

func (e IdentityServiceError) Error() string { return string(e) }

const (
	ErrIdentitySyncFailed    IdentityServiceError = "kimlik senkronizasyonu başarısız oldu"
	ErrIdentityEmailTaken    IdentityServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrIdentityLoginFailed   IdentityServiceError = "e-posta veya şifre hatalı"
	ErrIdentityUserSuspended IdentityServiceError = "hesap askıya alınmış"
	ErrIdentityTokenFailed   IdentityServiceError = "erişim token'ı üretilemedi"
)

// SyncResult sync/register/login çağrılarının ortak sonucu.
type SyncResult struct {
	User           *models.User `json:"user"`
	OrganizationID uint         `json:"organizationId"`
	AccessToken    string       `json:"accessToken"`
}

// AccessClaims erişim token'ının içeriği: {email, subjectId}.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IIdentityService kimlik senkronizasyonu ve token işlemleri için arayüz.
type IIdentityService interface {
	// Sync dışarıda doğrulanmış kimliği yerel kullanıcı + organizasyon
	// kaydıyla eşler. Aynı kimlikle tekrar tekrar çağrılması güvenlidir.
	Sync(ctx context.Context, req dto.SyncRequest) (*SyncResult, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*SyncResult, error)
	Login(ctx context.Context, req dto.LoginRequest) (*SyncResult, error)
	ResolveOwningOrganization(ctx context.Context, userID string) (*models.Organization, error)
	GenerateAccessToken(user *models.User) (string, error)
	ParseAccessToken(tokenString string) (*AccessClaims, error)
}

// IdentityService IIdentityService arayüzünü uygular.
type IdentityService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewIdentityService yeni bir IdentityService örneği oluşturur.
func NewIdentityService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) IIdentityService {
	return &IdentityService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Sync kimliği tek transaction içinde kullanıcı ve organizasyon kaydına dönüştürür.
//
// Eşleşme önceliği sabittir: önce ID, sonra e-posta; ikisi farklı satırlara
// denk gelirse ID ile bulunan kayıt kazanır. Kullanıcı varsa sadece isim ve
// doğrulama bayrağı güncellenir; doğrulama tek yönlüdür, true olan bir kayıt
// sync ile false'a indirilmez. Çağrı başına en fazla bir kullanıcı ve bir
// organizasyon satırı oluşur; herhangi bir adım başarısız olursa tamamı geri
// alınır, organizasyonsuz kullanıcı durumu dışarıya görünmez.
func (s *IdentityService) Sync(ctx context.Context, req dto.SyncRequest) (*SyncResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var user *models.User
	var org *models.Organization

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepoTx := repositories.NewUserRepositoryTx(tx)

		// 1. Kullanıcıyı bul: önce ID, sonra e-posta.
		existing, err := userRepoTx.FindByID(ctx, req.ID)
		if errors.Is(err, repositories.ErrNotFound) {
			existing, err = userRepoTx.FindByEmail(ctx, req.Email)
		}

		switch {
		case err == nil:
			// 2a. Mevcut kullanıcı: isim ve doğrulama bayrağını yakınsa.
			existing.DisplayName = req.DisplayName
			if req.EmailVerified && !existing.EmailVerified {
				existing.EmailVerified = true
			}
			if saveErr := userRepoTx.Save(ctx, existing); saveErr != nil {
				configslog.Log.Error("Sync: kullanıcı güncellenemedi", zap.String("user_id", existing.ID), zap.Error(saveErr))
				return ErrIdentitySyncFailed
			}
			user = existing

		case errors.Is(err, repositories.ErrNotFound):
			// 2b. Yeni kullanıcı: sağlayıcının ID'si primary key olur.
			hash, hashErr := hashPlaceholder(req.PasswordPlaceholder)
			if hashErr != nil {
				configslog.Log.Error("Sync: parola placeholder hash'lenemedi", zap.Error(hashErr))
				return ErrIdentitySyncFailed
			}
			created := &models.User{
				ID:            req.ID,
				Email:         req.Email,
				DisplayName:   req.DisplayName,
				PasswordHash:  hash,
				EmailVerified: req.EmailVerified,
				Status:        models.UserStatusActive,
			}
			if createErr := userRepoTx.Create(ctx, created); createErr != nil {
				configslog.Log.Error("Sync: kullanıcı oluşturulamadı", zap.String("email", req.Email), zap.Error(createErr))
				return ErrIdentitySyncFailed
			}
			user = created

		default:
			return err
		}

		// 3. Organizasyon çözümlemesi: sahiplik > üyelik > yeni organizasyon.
		resolved, orgErr := resolveOrCreateOrganization(ctx, tx, user)
		if orgErr != nil {
			return orgErr
		}
		org = resolved
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	token, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	configslog.SLog.Infof("Kimlik senkronize edildi: UserID %s, OrgID %d", user.ID, org.ID)
	return &SyncResult{User: user, OrganizationID: org.ID, AccessToken: token}, nil
}

// Register yerel bir hesap açar; organizasyon çözümlemesi sync ile aynıdır.
func (s *IdentityService) Register(ctx context.Context, req dto.RegisterRequest) (*SyncResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var user *models.User
	var org *models.Organization

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepoTx := repositories.NewUserRepositoryTx(tx)

		if _, err := userRepoTx.FindByEmail(ctx, req.Email); err == nil {
			return fmt.Errorf("%w: %v", apperr.ErrConflict, ErrIdentityEmailTaken)
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return ErrIdentitySyncFailed
		}
		created := &models.User{
			Email:        req.Email,
			DisplayName:  req.DisplayName,
			PasswordHash: string(hash),
			Status:       models.UserStatusActive,
		}
		if err := userRepoTx.Create(ctx, created); err != nil {
			configslog.Log.Error("Register: kullanıcı oluşturulamadı", zap.String("email", req.Email), zap.Error(err))
			return ErrIdentitySyncFailed
		}
		user = created

		resolved, orgErr := resolveOrCreateOrganization(ctx, tx, user)
		if orgErr != nil {
			return orgErr
		}
		org = resolved
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	token, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydı: UserID %s, OrgID %d", user.ID, org.ID)
	return &SyncResult{User: user, OrganizationID: org.ID, AccessToken: token}, nil
}

// Login e-posta + şifre ile giriş yapar.
func (s *IdentityService) Login(ctx context.Context, req dto.LoginRequest) (*SyncResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userRepo := repositories.NewUserRepositoryTx(s.db)
	user, err := userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, ErrIdentityLoginFailed)
	}
	if err != nil {
		return nil, err
	}
	if user.Status == models.UserStatusSuspended {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, ErrIdentityUserSuspended)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, ErrIdentityLoginFailed)
	}

	// Eski kayıtlarda organizasyon eksik kalmışsa burada onarılır.
	org, err := s.ResolveOwningOrganization(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &SyncResult{User: user, OrganizationID: org.ID, AccessToken: token}, nil
}

// ResolveOwningOrganization kullanıcının bağlı olduğu organizasyonu döndürür;
// yoksa oluşturur (önceki başarısız sync'in onarımı).
func (s *IdentityService) ResolveOwningOrganization(ctx context.Context, userID string) (*models.Organization, error) {
	var org *models.Organization
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepoTx := repositories.NewUserRepositoryTx(tx)
		user, err := userRepoTx.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		resolved, orgErr := resolveOrCreateOrganization(ctx, tx, user)
		if orgErr != nil {
			return orgErr
		}
		org = resolved
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return org, nil
}

// resolveOrCreateOrganization kullanıcının organizasyonunu bulur ya da
// varsayılan isimle oluşturur. Çağıranın transaction'ı içinde çalışır.
func resolveOrCreateOrganization(ctx context.Context, tx *gorm.DB, user *models.User) (*models.Organization, error) {
	orgRepoTx := repositories.NewOrganizationRepositoryTx(tx)

	org, err := orgRepoTx.FindOwningByUserID(ctx, user.ID)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	created := &models.Organization{
		Name:    fmt.Sprintf("%s's Organization", user.DisplayName),
		OwnerID: user.ID,
	}
	// Organizasyonu sahibi adına oluştur: audit kolonları kullanıcıyı gösterir.
	ctx = models.ContextWithUserID(ctx, user.ID)
	if createErr := orgRepoTx.Create(ctx, created); createErr != nil {
		configslog.Log.Error("Organizasyon oluşturulamadı", zap.String("user_id", user.ID), zap.Error(createErr))
		return nil, ErrIdentitySyncFailed
	}
	return created, nil
}

// hashPlaceholder sağlayıcı placeholder'ını bcrypt ile saklar.
// Placeholder boşsa login'de asla eşleşmeyecek rastgele bir değer kullanılır.
func hashPlaceholder(placeholder string) (string, error) {
	if placeholder == "" {
		random, err := utils.GenerateSecureRandomString(32)
		if err != nil {
			return "", err
		}
		placeholder = random
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(placeholder), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateAccessToken {email, subjectId} taşıyan imzalı bir JWT üretir.
func (s *IdentityService) GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		configslog.Log.Error("Erişim token'ı imzalanamadı", zap.Error(err))
		return "", ErrIdentityTokenFailed
	}
	return signed, nil
}

// ParseAccessToken token'ı doğrular ve claim'lerini döndürür.
func (s *IdentityService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen imza yöntemi: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: token geçersiz", apperr.ErrUnauthorized)
	}
	return claims, nil
}

var _ IIdentityService = (*IdentityService)(nil)
