package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
)

// IOrganizationRepository organizasyon veritabanı işlemleri için arayüz.
type IOrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByID(ctx context.Context, id uint) (*models.Organization, error)
	// FindOwningByUserID kullanıcının "sahip" olduğu organizasyonu arar;
	// bulunamazsa üyelik tablosuna bakar. Öncelik sırası sabittir:
	// önce sahiplik, sonra üyelik.
	FindOwningByUserID(ctx context.Context, userID string) (*models.Organization, error)
}

// OrganizationRepository IOrganizationRepository arayüzünü uygular.
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository yeni bir OrganizationRepository örneği oluşturur.
func NewOrganizationRepository() IOrganizationRepository {
	return &OrganizationRepository{db: configs.GetDB()}
}

// NewOrganizationRepositoryTx transaction üzerinde çalışan bir repository oluşturur.
func NewOrganizationRepositoryTx(tx *gorm.DB) IOrganizationRepository {
	return &OrganizationRepository{db: tx}
}

// Create yeni bir organizasyon kaydı oluşturur.
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	if org == nil {
		return errors.New("oluşturulacak organizasyon nil olamaz")
	}
	return r.db.WithContext(ctx).Create(org).Error
}

// FindByID organizasyonu ID ile bulur.
func (r *OrganizationRepository) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var org models.Organization
	err := r.db.WithContext(ctx).First(&org, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("OrganizationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &org, nil
}

// FindOwningByUserID kullanıcının bağlı olduğu organizasyonu çözümler.
func (r *OrganizationRepository) FindOwningByUserID(ctx context.Context, userID string) (*models.Organization, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	db := r.db.WithContext(ctx)

	// 1. Sahiplik eşleşmesi
	var org models.Organization
	err := db.Where("owner_id = ?", userID).Order("id asc").First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("OrganizationRepository.FindOwningByUserID: DB error (owner)", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 2. Üyelik eşleşmesi
	err = db.
		Joins("JOIN organization_members ON organization_members.organization_id = organizations.id").
		Where("organization_members.user_id = ?", userID).
		Order("organizations.id asc").
		First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("OrganizationRepository.FindOwningByUserID: DB error (member)", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &org, nil
}

var _ IOrganizationRepository = (*OrganizationRepository)(nil)
