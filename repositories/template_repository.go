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

// ITemplateRepository şablon veritabanı işlemleri için arayüz.
// Şablonlar kartvizit çekirdeği açısından salt okunurdur.
type ITemplateRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Template, error)
	FindByName(ctx context.Context, name string) (*models.Template, error)
	Exists(ctx context.Context, id uint) (bool, error)
	GetAll(ctx context.Context) ([]models.Template, error)
}

// TemplateRepository ITemplateRepository arayüzünü uygular.
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository yeni bir TemplateRepository örneği oluşturur.
func NewTemplateRepository() ITemplateRepository {
	return &TemplateRepository{db: configs.GetDB()}
}

// NewTemplateRepositoryTx transaction üzerinde çalışan bir repository oluşturur.
func NewTemplateRepositoryTx(tx *gorm.DB) ITemplateRepository {
	return &TemplateRepository{db: tx}
}

// FindByID şablonu ID ile bulur.
func (r *TemplateRepository) FindByID(ctx context.Context, id uint) (*models.Template, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var tpl models.Template
	err := r.db.WithContext(ctx).First(&tpl, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("TemplateRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &tpl, nil
}

// FindByName şablonu benzersiz adı ile bulur.
func (r *TemplateRepository) FindByName(ctx context.Context, name string) (*models.Template, error) {
	if name == "" {
		return nil, ErrNotFound
	}
	var tpl models.Template
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Exists şablonun var olup olmadığını kontrol eder.
func (r *TemplateRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Template{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetAll tüm şablonları listeler.
func (r *TemplateRepository) GetAll(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	err := r.db.WithContext(ctx).Order("id asc").Find(&templates).Error
	return templates, err
}

var _ ITemplateRepository = (*TemplateRepository)(nil)
