package repositories

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
)

// IVCardRepository kartvizit aggregate'i için veritabanı arayüzü.
// Alt koleksiyonlar her zaman parent yazımıyla birlikte yaşar;
// bağımsız create/update yolu yoktur.
type IVCardRepository interface {
	Create(ctx context.Context, card *models.VCard) error
	FindByID(ctx context.Context, id uint) (*models.VCard, error)
	FindByIDLocked(ctx context.Context, id uint) (*models.VCard, error)
	FindBySlug(ctx context.Context, slug string) (*models.VCard, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.VCard, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	SaveScalars(ctx context.Context, card *models.VCard) error
	ReplaceBusinessHours(ctx context.Context, vcardID uint, rows []models.BusinessHour) error
	ReplaceServices(ctx context.Context, vcardID uint, rows []models.CardService) error
	ReplaceSocialLinks(ctx context.Context, vcardID uint, rows []models.SocialLink) error
	ReplaceTestimonials(ctx context.Context, vcardID uint, rows []models.Testimonial) error
	Delete(ctx context.Context, id uint) error
	FindAllByOrganizationPaginated(ctx context.Context, orgID uint, params queryparams.ListParams) ([]models.VCard, int64, error)
	CountByOrganization(ctx context.Context, orgID uint) (int64, error)
	FindAllPublished(ctx context.Context) ([]models.VCard, error)
}

// VCardRepository IVCardRepository arayüzünü uygular.
type VCardRepository struct {
	db *gorm.DB
}

// NewVCardRepository yeni bir VCardRepository örneği oluşturur.
func NewVCardRepository() IVCardRepository {
	return &VCardRepository{db: configs.GetDB()}
}

// NewVCardRepositoryTx transaction üzerinde çalışan bir repository oluşturur.
func NewVCardRepositoryTx(tx *gorm.DB) IVCardRepository {
	return &VCardRepository{db: tx}
}

// byOrder alt koleksiyonları display_order'a göre artan sıralayan preload koşulu.
func byOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order asc")
}

// byInsertion order kolonu olmayan alt koleksiyonlar için deterministik sıra:
// satırlar gönderildikleri sırayla insert edilir, id bu sırayı korur.
func byInsertion(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}

// preloadChildren dört alt koleksiyonu sıralı şekilde preload eder.
func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("BusinessHours", byInsertion).
		Preload("Services", byOrder).
		Preload("SocialLinks", byOrder).
		Preload("Testimonials", byOrder)
}

// Create kartviziti alt koleksiyonlarıyla birlikte oluşturur.
// Slug benzersizliği veritabanı unique index'i ile garanti edilir;
// çakışma gorm.ErrDuplicatedKey olarak döner.
func (r *VCardRepository) Create(ctx context.Context, card *models.VCard) error {
	if card == nil {
		return errors.New("oluşturulacak kartvizit nil olamaz")
	}
	return r.db.WithContext(ctx).Create(card).Error
}

// FindByID kartviziti alt koleksiyonlarıyla birlikte bulur.
func (r *VCardRepository) FindByID(ctx context.Context, id uint) (*models.VCard, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var card models.VCard
	err := preloadChildren(r.db.WithContext(ctx)).First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("VCardRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// FindByIDLocked kartvizit satırını FOR UPDATE kilidi ile alır.
// Sadece transaction içinden çağrılmalıdır; alt koleksiyonlar yüklenmez.
func (r *VCardRepository) FindByIDLocked(ctx context.Context, id uint) (*models.VCard, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var card models.VCard
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// FindBySlug kartviziti yayın durumuna bakmadan slug ile bulur.
func (r *VCardRepository) FindBySlug(ctx context.Context, slug string) (*models.VCard, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var card models.VCard
	err := preloadChildren(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("VCardRepository.FindBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// FindPublishedBySlug public okuma yoludur: sadece yayındaki kartları döndürür.
// Mirror üretimi de aynı yoldan okur; üçüncü tarafın gördüğü veriyle birebirdir.
func (r *VCardRepository) FindPublishedBySlug(ctx context.Context, slug string) (*models.VCard, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var card models.VCard
	err := preloadChildren(r.db.WithContext(ctx)).
		Where("slug = ? AND publish_status = ?", slug, models.PublishStatusPublished).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("VCardRepository.FindPublishedBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// SlugExists slug'ın başka bir kartvizit tarafından kullanılıp kullanılmadığını
// kontrol eder. excludeID update sırasında kartın kendi kaydını dışlar.
func (r *VCardRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	if slug == "" {
		return false, errors.New("kontrol edilecek slug boş olamaz")
	}
	query := r.db.WithContext(ctx).Model(&models.VCard{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		configslog.Log.Error("VCardRepository.SlugExists: DB error", zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// SaveScalars kartın skaler alanlarını kaydeder; alt koleksiyonlara dokunmaz.
// Koleksiyon değişimi Replace* metodlarıyla yapılır.
func (r *VCardRepository) SaveScalars(ctx context.Context, card *models.VCard) error {
	if card == nil || card.ID == 0 {
		return errors.New("kaydedilecek kartvizit geçerli değil")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(card).Error
}

// replaceChildren verilen alt koleksiyon tablosunu komple değiştirir:
// önce mevcut satırlar silinir, sonra yeni set eklenir.
// Okuyucuların yarı boş koleksiyon görmemesi için çağıran bu metodu
// parent yazımıyla aynı transaction içinde kullanmalıdır.
func replaceChildren[T any](db *gorm.DB, vcardID uint, rows []T) error {
	var model T
	if err := db.Where("v_card_id = ?", vcardID).Delete(&model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

// ReplaceBusinessHours çalışma saatlerini komple değiştirir.
func (r *VCardRepository) ReplaceBusinessHours(ctx context.Context, vcardID uint, rows []models.BusinessHour) error {
	for i := range rows {
		rows[i].VCardID = vcardID
		rows[i].ID = 0
	}
	return replaceChildren(r.db.WithContext(ctx), vcardID, rows)
}

// ReplaceServices hizmetleri komple değiştirir.
func (r *VCardRepository) ReplaceServices(ctx context.Context, vcardID uint, rows []models.CardService) error {
	for i := range rows {
		rows[i].VCardID = vcardID
		rows[i].ID = 0
	}
	return replaceChildren(r.db.WithContext(ctx), vcardID, rows)
}

// ReplaceSocialLinks sosyal linkleri komple değiştirir.
func (r *VCardRepository) ReplaceSocialLinks(ctx context.Context, vcardID uint, rows []models.SocialLink) error {
	for i := range rows {
		rows[i].VCardID = vcardID
		rows[i].ID = 0
	}
	return replaceChildren(r.db.WithContext(ctx), vcardID, rows)
}

// ReplaceTestimonials referansları komple değiştirir.
func (r *VCardRepository) ReplaceTestimonials(ctx context.Context, vcardID uint, rows []models.Testimonial) error {
	for i := range rows {
		rows[i].VCardID = vcardID
		rows[i].ID = 0
	}
	return replaceChildren(r.db.WithContext(ctx), vcardID, rows)
}

// Delete kartviziti ve dört alt koleksiyonunu kalıcı olarak siler.
// Hard delete kullanılır ki slug tekrar kullanılabilir olsun.
func (r *VCardRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("silinecek kartvizit ID'si geçersiz")
	}
	db := r.db.WithContext(ctx)
	if err := db.Where("v_card_id = ?", id).Delete(&models.BusinessHour{}).Error; err != nil {
		return err
	}
	if err := db.Where("v_card_id = ?", id).Delete(&models.CardService{}).Error; err != nil {
		return err
	}
	if err := db.Where("v_card_id = ?", id).Delete(&models.SocialLink{}).Error; err != nil {
		return err
	}
	if err := db.Where("v_card_id = ?", id).Delete(&models.Testimonial{}).Error; err != nil {
		return err
	}
	result := db.Unscoped().Delete(&models.VCard{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAllByOrganizationPaginated organizasyona ait kartvizitleri sayfalayarak listeler.
func (r *VCardRepository) FindAllByOrganizationPaginated(ctx context.Context, orgID uint, params queryparams.ListParams) ([]models.VCard, int64, error) {
	if orgID == 0 {
		return nil, 0, errors.New("geçersiz organizasyon ID")
	}
	var results []models.VCard
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.VCard{}).Where("organization_id = ?", orgID)

	if params.Name != "" {
		search := "%" + strings.ToLower(params.Name) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(title) LIKE ? OR lower(slug) LIKE ?", search, search, search)
	}
	if params.Status != "" {
		query = query.Where("publish_status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	allowedSortColumns := map[string]bool{
		"id": true, "created_at": true, "updated_at": true,
		"slug": true, "name": true, "title": true, "publish_status": true,
	}
	sortBy := params.SortBy
	if !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := preloadChildren(query).
		Order(sortBy + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

// CountByOrganization organizasyona ait kartvizit sayısını alır.
func (r *VCardRepository) CountByOrganization(ctx context.Context, orgID uint) (int64, error) {
	if orgID == 0 {
		return 0, errors.New("geçersiz organizasyon ID")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VCard{}).Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}

// FindAllPublished yayındaki tüm kartları slug sırasıyla döndürür.
// Toplu mirror yenilemesi bu listeyi gezer.
func (r *VCardRepository) FindAllPublished(ctx context.Context) ([]models.VCard, error) {
	var results []models.VCard
	err := preloadChildren(r.db.WithContext(ctx)).
		Where("publish_status = ?", models.PublishStatusPublished).
		Order("slug asc").
		Find(&results).Error
	return results, err
}

var _ IVCardRepository = (*VCardRepository)(nil)
