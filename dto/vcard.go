// Package dto HTTP gövdelerinden parse edilen istek yapılarını ve
// validasyonlarını içerir. Validasyon her zaman persistence'tan önce çalışır;
// başarısız olursa hiçbir kayıt değişmez.
package dto

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"kartvizit.link/pkg/apperr"
)

var validate = validator.New()

// BusinessHourSpec bir günün çalışma saati girdisi.
type BusinessHourSpec struct {
	Day       string  `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	OpenTime  *string `json:"openTime" validate:"omitempty,len=5"`
	CloseTime *string `json:"closeTime" validate:"omitempty,len=5"`
	IsClosed  bool    `json:"isClosed"`
}

// ServiceSpec bir hizmet girdisi.
type ServiceSpec struct {
	Title       string           `json:"title" validate:"required,max=150"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency" validate:"omitempty,len=3"`
	Order       int              `json:"order"`
}

// SocialLinkSpec bir sosyal medya bağlantısı girdisi.
type SocialLinkSpec struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url,max=500"`
	Order    int    `json:"order"`
}

// TestimonialSpec bir müşteri yorumu girdisi.
type TestimonialSpec struct {
	Name   string  `json:"name" validate:"required,max=150"`
	Avatar *string `json:"avatar" validate:"omitempty,url,max=500"`
	Rating int     `json:"rating" validate:"required,min=1,max=5"`
	Text   string  `json:"text" validate:"required,max=2000"`
	Order  int     `json:"order"`
}

// VCardSpec kartvizit create/update isteğidir.
// Skaler alanlar pointer'dır: nil "dokunma" demektir (kısmi güncelleme).
// Alt koleksiyonlar da pointer'dır: nil "dokunma", boş slice "hepsini sil",
// dolu slice "komple değiştir" anlamına gelir.
type VCardSpec struct {
	Slug       *string `json:"slug" validate:"omitempty,min=1,max=80"`
	TemplateID *uint   `json:"templateId"`

	Title *string `json:"title" validate:"omitempty,min=1,max=150"`
	Name  *string `json:"name" validate:"omitempty,min=1,max=150"`

	JobTitle *string `json:"jobTitle" validate:"omitempty,max=150"`
	Company  *string `json:"company" validate:"omitempty,max=150"`
	Bio      *string `json:"bio" validate:"omitempty,max=5000"`
	Avatar   *string `json:"avatar" validate:"omitempty,url,max=500"`
	Banner   *string `json:"banner" validate:"omitempty,url,max=500"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Website  *string `json:"website" validate:"omitempty,url,max=255"`
	Address  *string `json:"address" validate:"omitempty,max=1000"`

	ThemeConfig json.RawMessage `json:"themeConfig"`
	FontID      *uint           `json:"fontId"`

	PublishStatus *string `json:"publishStatus" validate:"omitempty,oneof=DRAFT PUBLISHED"`

	BusinessHours *[]BusinessHourSpec `json:"businessHours" validate:"omitempty,dive"`
	Services      *[]ServiceSpec      `json:"services" validate:"omitempty,dive"`
	SocialLinks   *[]SocialLinkSpec   `json:"socialLinks" validate:"omitempty,dive"`
	Testimonials  *[]TestimonialSpec  `json:"testimonials" validate:"omitempty,dive"`
}

// Validate tüm iç içe girdileri kontrol eder; hata apperr.ErrValidation'a sarılır.
func (s *VCardSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

// RequireCreateFields create isteğinde zorunlu alanları kontrol eder.
// Slug opsiyoneldir; verilmezse servis isimden üretir.
func (s *VCardSpec) RequireCreateFields() error {
	if s.Title == nil || *s.Title == "" {
		return fmt.Errorf("%w: başlık zorunludur", apperr.ErrValidation)
	}
	if s.Name == nil || *s.Name == "" {
		return fmt.Errorf("%w: isim zorunludur", apperr.ErrValidation)
	}
	if s.TemplateID == nil || *s.TemplateID == 0 {
		return fmt.Errorf("%w: şablon seçimi zorunludur", apperr.ErrValidation)
	}
	return nil
}
