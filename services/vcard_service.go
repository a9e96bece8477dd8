package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/dto"
	"kartvizit.link/models"
	"kartvizit.link/pkg/apperr"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"
)

// VCardServiceError özel servis hataları
type VCardServiceError string

func (e VCardServiceError) Error() string { return string(e) }

const (
	ErrVCardNotFound        VCardServiceError = "kartvizit bulunamadı"
	ErrVCardSlugTaken       VCardServiceError = "bu slug başka bir kartvizit tarafından kullanılıyor"
	ErrVCardSlugLocked      VCardServiceError = "yayınlanmış kartvizitin slug'ı değiştirilemez"
	ErrVCardSlugInvalid     VCardServiceError = "geçersiz slug"
	ErrVCardTemplateMissing VCardServiceError = "kartvizit şablonu bulunamadı"
	ErrVCardForbidden       VCardServiceError = "bu işlem için yetkiniz yok"
	ErrVCardPublishFields   VCardServiceError = "yayına almak için başlık ve isim dolu olmalıdır"
	ErrVCardCreationFailed  VCardServiceError = "kartvizit oluşturulamadı"
	ErrVCardUpdateFailed    VCardServiceError = "kartvizit güncellenemedi"
	ErrVCardDeletionFailed  VCardServiceError = "kartvizit silinemedi"
)

// IVCardService kartvizit aggregate işlemleri için arayüz.
type IVCardService interface {
	Create(ctx context.Context, orgID uint, spec dto.VCardSpec) (*models.VCard, error)
	Update(ctx context.Context, id uint, orgID uint, spec dto.VCardSpec) (*models.VCard, error)
	GetByID(ctx context.Context, id uint, orgID uint) (*models.VCard, error)
	// GetPublishedBySlug public okuma yoludur; sadece yayındaki kartları döndürür.
	GetPublishedBySlug(ctx context.Context, slug string) (*models.VCard, error)
	Delete(ctx context.Context, id uint, orgID uint) error
	GetForOrganizationPaginated(ctx context.Context, orgID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetCountForOrganization(ctx context.Context, orgID uint) (int64, error)
}

// VCardService IVCardService arayüzünü uygular.
//
// Yayın akışı: create/update transaction'ı commit olduktan SONRA, kart
// PUBLISHED durumundaysa mirror yenilemesi dispatch edilir. Dispatch
// asenkrondur ve yazma cevabını asla bekletmez; mirror üretimi veriyi
// public okuma yolundan tekrar okur, çağıranın bellekteki kopyasından değil.
type VCardService struct {
	db     *gorm.DB
	repo   repositories.IVCardRepository
	mirror IMirrorService
	// dispatch testlerde senkron çalıştırmak için değiştirilebilir.
	dispatch func(slug string)
}

// NewVCardService yeni bir VCardService örneği oluşturur.
// mirror nil verilebilir; bu durumda yayın tetiklemesi devre dışı kalır.
func NewVCardService(db *gorm.DB, mirror IMirrorService) *VCardService {
	s := &VCardService{
		db:     db,
		repo:   repositories.NewVCardRepositoryTx(db),
		mirror: mirror,
	}
	s.dispatch = s.dispatchAsync
	return s
}

// dispatchAsync mirror yenilemesini arka planda başlatır (fire-and-forget).
// Sonuç sadece loglardan izlenir; hata yazma işlemine asla yansımaz.
func (s *VCardService) dispatchAsync(slug string) {
	if s.mirror == nil {
		return
	}
	go func() {
		if _, err := s.mirror.Regenerate(context.Background(), slug); err != nil {
			configslog.Log.Warn("Mirror yenilemesi başarısız",
				zap.String("slug", slug), zap.Error(err))
		}
	}()
}

// SetDispatch yayın tetiklemesinin nasıl çalıştırılacağını değiştirir (test için).
func (s *VCardService) SetDispatch(fn func(slug string)) {
	s.dispatch = fn
}

// Create kartviziti ve verilen tüm alt koleksiyon kayıtlarını tek transaction
// içinde oluşturur. Validasyon persistence'tan önce yapılır; slug çakışması
// Conflict, bilinmeyen şablon NotFound döner ve hiçbir kayıt değişmez.
func (s *VCardService) Create(ctx context.Context, orgID uint, spec dto.VCardSpec) (*models.VCard, error) {
	if orgID == 0 {
		return nil, fmt.Errorf("%w: geçersiz organizasyon", apperr.ErrValidation)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := spec.RequireCreateFields(); err != nil {
		return nil, err
	}

	// Slug: verilmişse normalize edilir, verilmemişse isimden üretilir.
	var slug string
	if spec.Slug != nil {
		slug = utils.NormalizeSlug(*spec.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, ErrVCardSlugInvalid)
		}
	} else {
		suggested, err := utils.SuggestSlug(*spec.Name)
		if err != nil {
			return nil, ErrVCardCreationFailed
		}
		slug = suggested
	}

	status := models.PublishStatusDraft
	if spec.PublishStatus != nil {
		status = models.PublishStatus(*spec.PublishStatus)
	}
	if status == models.PublishStatusPublished {
		if *spec.Title == "" || *spec.Name == "" {
			return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, ErrVCardPublishFields)
		}
	}

	card := &models.VCard{
		OrganizationID: orgID,
		Slug:           slug,
		TemplateID:     *spec.TemplateID,
		Title:          *spec.Title,
		Name:           *spec.Name,
		JobTitle:       spec.JobTitle,
		Company:        spec.Company,
		Bio:            spec.Bio,
		Avatar:         spec.Avatar,
		Banner:         spec.Banner,
		Phone:          spec.Phone,
		Email:          spec.Email,
		Website:        spec.Website,
		Address:        spec.Address,
		FontID:         spec.FontID,
		PublishStatus:  status,
	}
	if len(spec.ThemeConfig) > 0 {
		card.ThemeConfig = datatypes.JSON(spec.ThemeConfig)
	}
	if status == models.PublishStatusPublished {
		now := time.Now()
		card.PublishedAt = &now
	}
	if spec.BusinessHours != nil {
		card.BusinessHours = mapBusinessHours(*spec.BusinessHours)
	}
	if spec.Services != nil {
		card.Services = mapServices(*spec.Services)
	}
	if spec.SocialLinks != nil {
		card.SocialLinks = mapSocialLinks(*spec.SocialLinks)
	}
	if spec.Testimonials != nil {
		card.Testimonials = mapTestimonials(*spec.Testimonials)
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewVCardRepositoryTx(tx)
		tplRepoTx := repositories.NewTemplateRepositoryTx(tx)

		// a. Şablon var mı?
		exists, err := tplRepoTx.Exists(ctx, *spec.TemplateID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %v", apperr.ErrNotFound, ErrVCardTemplateMissing)
		}

		// b. Slug ön kontrolü. Asıl garanti unique index'tedir; bu kontrol
		// çakışmayı insert denemeden yakalayıp temiz bir Conflict üretir.
		taken, err := repoTx.SlugExists(ctx, slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %v", apperr.ErrConflict, ErrVCardSlugTaken)
		}

		// c. Kart + alt koleksiyonlar tek seferde.
		if err := repoTx.Create(ctx, card); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Ön kontrol ile insert arasındaki yarışı index kapatır.
				return fmt.Errorf("%w: %v", apperr.ErrConflict, ErrVCardSlugTaken)
			}
			configslog.Log.Error("Kartvizit oluşturulamadı", zap.String("slug", slug), zap.Error(err))
			return ErrVCardCreationFailed
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Commit sonrası: yayındaysa mirror tetiklenir.
	if card.PublishStatus == models.PublishStatusPublished {
		s.dispatch(card.Slug)
	}

	configslog.SLog.Infof("Kartvizit oluşturuldu: ID %d, Slug %s", card.ID, card.Slug)
	return s.repo.FindByID(ctx, card.ID)
}

// Update kısmi güncelleme uygular. Spec'te verilen alt koleksiyonlar komple
// değiştirilir (delete + insert, parent ile aynı transaction'da); verilmeyen
// koleksiyonlara dokunulmaz. Skaler alanlarda nil "dokunma" demektir.
func (s *VCardService) Update(ctx context.Context, id uint, orgID uint, spec dto.VCardSpec) (*models.VCard, error) {
	if id == 0 || orgID == 0 {
		return nil, fmt.Errorf("%w: geçersiz ID veya organizasyon", apperr.ErrValidation)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var finalSlug string
	var finalStatus models.PublishStatus

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewVCardRepositoryTx(tx)
		tplRepoTx := repositories.NewTemplateRepositoryTx(tx)

		// a. Mevcut kaydı kilitli al.
		card, err := repoTx.FindByIDLocked(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %v", apperr.ErrNotFound, ErrVCardNotFound)
		}
		if err != nil {
			return err
		}

		// b. Sahiplik kontrolü.
		if card.OrganizationID != orgID {
			configslog.Log.Warn("Yetkisiz kartvizit güncelleme denemesi",
				zap.Uint("vcard_id", id), zap.Uint("org_id", orgID), zap.Uint("owner_org_id", card.OrganizationID))
			return fmt.Errorf("%w: %v", apperr.ErrForbidden, ErrVCardForbidden)
		}

		// c. Slug değişikliği: ilk yayından sonra kilitlidir.
		if spec.Slug != nil {
			newSlug := utils.NormalizeSlug(*spec.Slug)
			if newSlug == "" {
				return fmt.Errorf("%w: %v", apperr.ErrValidation, ErrVCardSlugInvalid)
			}
			if newSlug != card.Slug {
				if card.PublishedAt != nil {
					return fmt.Errorf("%w: %v", apperr.ErrValidation, ErrVCardSlugLocked)
				}
				taken, err := repoTx.SlugExists(ctx, newSlug, card.ID)
				if err != nil {
					return err
				}
				if taken {
					return fmt.Errorf("%w: %v", apperr.ErrConflict, ErrVCardSlugTaken)
				}
				card.Slug = newSlug
			}
		}

		// d. Şablon değişikliği.
		if spec.TemplateID != nil && *spec.TemplateID != card.TemplateID {
			exists, err := tplRepoTx.Exists(ctx, *spec.TemplateID)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w: %v", apperr.ErrNotFound, ErrVCardTemplateMissing)
			}
			card.TemplateID = *spec.TemplateID
		}

		// e. Skaler alanlar: sadece spec'te olanlar üzerine yazılır.
		applyScalarSpec(card, &spec)

		// f. Yayın durumu geçişi.
		if spec.PublishStatus != nil {
			card.PublishStatus = models.PublishStatus(*spec.PublishStatus)
		}
		if card.PublishStatus == models.PublishStatusPublished {
			if card.Title == "" || card.Name == "" {
				return fmt.Errorf("%w: %v", apperr.ErrValidation, ErrVCardPublishFields)
			}
			if card.PublishedAt == nil {
				now := time.Now()
				card.PublishedAt = &now
			}
		}

		if err := repoTx.SaveScalars(ctx, card); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %v", apperr.ErrConflict, ErrVCardSlugTaken)
			}
			configslog.Log.Error("Kartvizit güncellenemedi", zap.Uint("id", id), zap.Error(err))
			return ErrVCardUpdateFailed
		}

		// g. Verilen alt koleksiyonları komple değiştir.
		if spec.BusinessHours != nil {
			if err := repoTx.ReplaceBusinessHours(ctx, card.ID, mapBusinessHours(*spec.BusinessHours)); err != nil {
				configslog.Log.Error("Çalışma saatleri değiştirilemedi", zap.Uint("id", id), zap.Error(err))
				return ErrVCardUpdateFailed
			}
		}
		if spec.Services != nil {
			if err := repoTx.ReplaceServices(ctx, card.ID, mapServices(*spec.Services)); err != nil {
				configslog.Log.Error("Hizmetler değiştirilemedi", zap.Uint("id", id), zap.Error(err))
				return ErrVCardUpdateFailed
			}
		}
		if spec.SocialLinks != nil {
			if err := repoTx.ReplaceSocialLinks(ctx, card.ID, mapSocialLinks(*spec.SocialLinks)); err != nil {
				configslog.Log.Error("Sosyal linkler değiştirilemedi", zap.Uint("id", id), zap.Error(err))
				return ErrVCardUpdateFailed
			}
		}
		if spec.Testimonials != nil {
			if err := repoTx.ReplaceTestimonials(ctx, card.ID, mapTestimonials(*spec.Testimonials)); err != nil {
				configslog.Log.Error("Referanslar değiştirilemedi", zap.Uint("id", id), zap.Error(err))
				return ErrVCardUpdateFailed
			}
		}

		finalSlug = card.Slug
		finalStatus = card.PublishStatus
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Commit sonrası: kart yayındaysa içerik değişmiştir, mirror yenilenir.
	// DRAFT→PUBLISHED ve PUBLISHED→PUBLISHED aynı şekilde tetikler;
	// PUBLISHED→DRAFT eski artifact'i silmez (ayrı bir takip işi).
	if finalStatus == models.PublishStatusPublished {
		s.dispatch(finalSlug)
	}

	configslog.SLog.Infof("Kartvizit güncellendi: ID %d", id)
	return s.repo.FindByID(ctx, id)
}

// GetByID kartviziti sahibi organizasyon adına getirir.
func (s *VCardService) GetByID(ctx context.Context, id uint, orgID uint) (*models.VCard, error) {
	card, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", apperr.ErrNotFound, ErrVCardNotFound)
	}
	if err != nil {
		return nil, err
	}
	if card.OrganizationID != orgID {
		return nil, fmt.Errorf("%w: %v", apperr.ErrForbidden, ErrVCardForbidden)
	}
	return card, nil
}

// GetPublishedBySlug public slug çözümlemesi; DRAFT kartlar görünmez.
func (s *VCardService) GetPublishedBySlug(ctx context.Context, slug string) (*models.VCard, error) {
	card, err := s.repo.FindPublishedBySlug(ctx, slug)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", apperr.ErrNotFound, ErrVCardNotFound)
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Delete kartviziti ve tüm alt koleksiyonlarını kalıcı olarak siler.
func (s *VCardService) Delete(ctx context.Context, id uint, orgID uint) error {
	if id == 0 || orgID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya organizasyon", apperr.ErrValidation)
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewVCardRepositoryTx(tx)

		card, err := repoTx.FindByIDLocked(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %v", apperr.ErrNotFound, ErrVCardNotFound)
		}
		if err != nil {
			return err
		}
		if card.OrganizationID != orgID {
			return fmt.Errorf("%w: %v", apperr.ErrForbidden, ErrVCardForbidden)
		}

		if err := repoTx.Delete(ctx, id); err != nil {
			configslog.Log.Error("Kartvizit silinemedi", zap.Uint("id", id), zap.Error(err))
			return ErrVCardDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	configslog.SLog.Infof("Kartvizit silindi: ID %d", id)
	return nil
}

// GetForOrganizationPaginated organizasyonun kartvizitlerini sayfalayarak listeler.
func (s *VCardService) GetForOrganizationPaginated(ctx context.Context, orgID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if orgID == 0 {
		return nil, fmt.Errorf("%w: geçersiz organizasyon", apperr.ErrValidation)
	}
	params.Validate()
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}

	cards, totalCount, err := s.repo.FindAllByOrganizationPaginated(ctx, orgID, params)
	if err != nil {
		configslog.Log.Error("Organizasyon kartvizitleri listelenemedi", zap.Uint("org_id", orgID), zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: cards,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetCountForOrganization organizasyonun kartvizit sayısını alır.
func (s *VCardService) GetCountForOrganization(ctx context.Context, orgID uint) (int64, error) {
	return s.repo.CountByOrganization(ctx, orgID)
}

// applyScalarSpec spec'teki dolu skaler alanları karta uygular.
func applyScalarSpec(card *models.VCard, spec *dto.VCardSpec) {
	if spec.Title != nil {
		card.Title = *spec.Title
	}
	if spec.Name != nil {
		card.Name = *spec.Name
	}
	if spec.JobTitle != nil {
		card.JobTitle = spec.JobTitle
	}
	if spec.Company != nil {
		card.Company = spec.Company
	}
	if spec.Bio != nil {
		card.Bio = spec.Bio
	}
	if spec.Avatar != nil {
		card.Avatar = spec.Avatar
	}
	if spec.Banner != nil {
		card.Banner = spec.Banner
	}
	if spec.Phone != nil {
		card.Phone = spec.Phone
	}
	if spec.Email != nil {
		card.Email = spec.Email
	}
	if spec.Website != nil {
		card.Website = spec.Website
	}
	if spec.Address != nil {
		card.Address = spec.Address
	}
	if spec.FontID != nil {
		card.FontID = spec.FontID
	}
	if len(spec.ThemeConfig) > 0 {
		card.ThemeConfig = datatypes.JSON(spec.ThemeConfig)
	}
}

func mapBusinessHours(specs []dto.BusinessHourSpec) []models.BusinessHour {
	rows := make([]models.BusinessHour, len(specs))
	for i, s := range specs {
		rows[i] = models.BusinessHour{
			Day:       models.Weekday(s.Day),
			OpenTime:  s.OpenTime,
			CloseTime: s.CloseTime,
			IsClosed:  s.IsClosed,
		}
	}
	return rows
}

func mapServices(specs []dto.ServiceSpec) []models.CardService {
	rows := make([]models.CardService, len(specs))
	for i, s := range specs {
		rows[i] = models.CardService{
			Title:       s.Title,
			Description: s.Description,
			Price:       s.Price,
			Currency:    s.Currency,
			Order:       s.Order,
		}
	}
	return rows
}

func mapSocialLinks(specs []dto.SocialLinkSpec) []models.SocialLink {
	rows := make([]models.SocialLink, len(specs))
	for i, s := range specs {
		rows[i] = models.SocialLink{
			Platform: s.Platform,
			URL:      s.URL,
			Order:    s.Order,
		}
	}
	return rows
}

func mapTestimonials(specs []dto.TestimonialSpec) []models.Testimonial {
	rows := make([]models.Testimonial, len(specs))
	for i, s := range specs {
		rows[i] = models.Testimonial{
			Name:   s.Name,
			Avatar: s.Avatar,
			Rating: s.Rating,
			Text:   s.Text,
			Order:  s.Order,
		}
	}
	return rows
}

var _ IVCardService = (*VCardService)(nil)
