// Package views gömülü HTML şablonlarını ve fiber view engine'ini sağlar.
// Aynı engine hem public kartvizit sayfasını render eder hem de mirror
// üreticisi tarafından statik dosya çıktısı için kullanılır.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

//go:embed public/*.html errors/*.html
var FS embed.FS

// NewEngine gömülü şablonlardan bir html engine oluşturur.
// Çağıran app dışında kullanacaksa engine.Load() çağırmalıdır.
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")

	// Opsiyonel (pointer) alanlar için yardımcılar.
	engine.AddFunc("str", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})
	engine.AddFunc("price", func(d *decimal.Decimal) string {
		if d == nil {
			return ""
		}
		return d.StringFixed(2)
	})
	return engine
}
