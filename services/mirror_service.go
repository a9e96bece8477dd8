package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/apperr"
	"kartvizit.link/repositories"
	"kartvizit.link/views"
)

// MirrorServiceError özel servis hataları
type MirrorServiceError string

func (e MirrorServiceError) Error() string { return string(e) }

const (
	ErrMirrorCardNotFound MirrorServiceError = "yayında bu slug ile bir kartvizit yok"
	ErrMirrorWriteFailed  MirrorServiceError = "mirror dosyası yazılamadı"
	ErrMirrorRenderFailed MirrorServiceError = "mirror şablonu render edilemedi"
)

// MirrorResult toplu yenilemede tek bir slug'ın sonucu.
// Bir slug'ın hatası diğerlerini etkilemez; her sonuç bağımsız raporlanır.
type MirrorResult struct {
	Slug    string `json:"slug"`
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

// IMirrorService statik kartvizit çıktısı (mirror) üretimi için arayüz.
type IMirrorService interface {
	// Regenerate verilen slug için artifact'i yeniden üretir ve yolunu döndürür.
	Regenerate(ctx context.Context, slug string) (string, error)
	// RegenerateAll yayındaki tüm kartlar için artifact üretir.
	// Listeleme hatası döner; tekil slug hataları sonuç listesinde kalır.
	RegenerateAll(ctx context.Context) ([]MirrorResult, error)
}

// MirrorService IMirrorService arayüzünü uygular.
//
// Artifact her zaman public okuma yolundan (FindPublishedBySlug) beslenir:
// mirror'da görünen veri, üçüncü bir tarafın API'den göreceği veriyle
// birebirdir. Çıktı slug bazlı klasörlenir ve her üretimde üzerine yazılır.
type MirrorService struct {
	repo      repositories.IVCardRepository
	engine    *html.Engine
	outputDir string
}

// NewMirrorService yeni bir MirrorService örneği oluşturur.
// Gömülü şablonlar burada yüklenir; yükleme hatası başlatmayı durdurur.
func NewMirrorService(db *gorm.DB, outputDir string) (*MirrorService, error) {
	engine := views.NewEngine()
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("mirror şablonları yüklenemedi: %w", err)
	}
	return &MirrorService{
		repo:      repositories.NewVCardRepositoryTx(db),
		engine:    engine,
		outputDir: outputDir,
	}, nil
}

// ArtifactPath slug'a ait artifact dosyasının yolunu döndürür.
func (s *MirrorService) ArtifactPath(slug string) string {
	return filepath.Join(s.outputDir, slug, "index.html")
}

// Regenerate kartı public yoldan okur, şablonu render eder ve
// <outputDir>/<slug>/index.html dosyasına atomik şekilde yazar.
func (s *MirrorService) Regenerate(ctx context.Context, slug string) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("%w: %v", apperr.ErrNotFound, ErrMirrorCardNotFound)
	}

	card, err := s.repo.FindPublishedBySlug(ctx, slug)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("%w: %v", apperr.ErrNotFound, ErrMirrorCardNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrDependency, err)
	}

	path, err := s.writeArtifact(card)
	if err != nil {
		configslog.Log.Error("Mirror artifact yazılamadı", zap.String("slug", slug), zap.Error(err))
		return "", fmt.Errorf("%w: %v", apperr.ErrDependency, err)
	}

	configslog.SLog.Infof("Mirror yenilendi: %s -> %s", slug, path)
	return path, nil
}

// RegenerateAll yayındaki tüm kartları gezer. Tek bir slug'ın hatası
// batch'i durdurmaz; sonuçlar slug bazında toplanır. Kartların hiç
// listelenememesi ise altyapı hatasıdır ve çağırana döner.
func (s *MirrorService) RegenerateAll(ctx context.Context) ([]MirrorResult, error) {
	cards, err := s.repo.FindAllPublished(ctx)
	if err != nil {
		configslog.Log.Error("Mirror toplu yenileme: yayındaki kartlar listelenemedi", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperr.ErrDependency, err)
	}

	results := make([]MirrorResult, 0, len(cards))
	for i := range cards {
		card := &cards[i]
		path, writeErr := s.writeArtifact(card)
		if writeErr != nil {
			configslog.Log.Warn("Mirror toplu yenileme: slug başarısız",
				zap.String("slug", card.Slug), zap.Error(writeErr))
			results = append(results, MirrorResult{Slug: card.Slug, Success: false, Error: writeErr.Error()})
			continue
		}
		results = append(results, MirrorResult{Slug: card.Slug, Success: true, Path: path})
	}

	configslog.SLog.Infof("Mirror toplu yenileme tamamlandı: %d kart", len(results))
	return results, nil
}

// writeArtifact şablonu geçici dosyaya render edip hedefin üzerine taşır.
// Rename sayesinde okuyucular hiçbir zaman yarım yazılmış dosya görmez.
func (s *MirrorService) writeArtifact(card *models.VCard) (string, error) {
	dir := filepath.Join(s.outputDir, card.Slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%v: %w", ErrMirrorWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, "index-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%v: %w", ErrMirrorWriteFailed, err)
	}
	tmpName := tmp.Name()

	renderErr := s.engine.Render(tmp, "public/card_view", map[string]interface{}{
		"Card": card,
	})
	closeErr := tmp.Close()
	if renderErr != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%v: %w", ErrMirrorRenderFailed, renderErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%v: %w", ErrMirrorWriteFailed, closeErr)
	}

	path := filepath.Join(dir, "index.html")
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%v: %w", ErrMirrorWriteFailed, err)
	}
	return path, nil
}

var _ IMirrorService = (*MirrorService)(nil)
