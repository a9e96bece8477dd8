package models

import (
	"time"

	"gorm.io/datatypes"
)

// PublishStatus kartvizitin yayın durumunu belirtir.
type PublishStatus string

const (
	PublishStatusDraft     PublishStatus = "DRAFT"
	PublishStatusPublished PublishStatus = "PUBLISHED"
)

// IsValid geçerli bir yayın durumu mu kontrol eder.
func (s PublishStatus) IsValid() bool {
	return s == PublishStatusDraft || s == PublishStatusPublished
}

// VCard dijital kartvizitin ana kaydıdır.
// Dört alt koleksiyonuyla (çalışma saatleri, hizmetler, sosyal linkler,
// referanslar) birlikte tek bir bütün (aggregate) olarak yazılır ve okunur.
type VCard struct {
	BaseModel
	OrganizationID uint   `gorm:"not null;index" json:"organizationId"`
	Slug           string `gorm:"type:varchar(80);uniqueIndex;not null" json:"slug"`
	TemplateID     uint   `gorm:"not null;index" json:"templateId"`

	Title string `gorm:"type:varchar(150);not null" json:"title"`
	Name  string `gorm:"type:varchar(150);not null" json:"name"`

	// Opsiyonel alanlar pointer tutulur; verilmediyse kolon NULL kalır.
	JobTitle *string `gorm:"type:varchar(150)" json:"jobTitle,omitempty"`
	Company  *string `gorm:"type:varchar(150)" json:"company,omitempty"`
	Bio      *string `gorm:"type:text" json:"bio,omitempty"`
	Avatar   *string `gorm:"type:varchar(500)" json:"avatar,omitempty"`
	Banner   *string `gorm:"type:varchar(500)" json:"banner,omitempty"`
	Phone    *string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email    *string `gorm:"type:varchar(100)" json:"email,omitempty"`
	Website  *string `gorm:"type:varchar(255)" json:"website,omitempty"`
	Address  *string `gorm:"type:text" json:"address,omitempty"`

	ThemeConfig datatypes.JSON `gorm:"type:jsonb" json:"themeConfig,omitempty"`
	FontID      *uint          `json:"fontId,omitempty"`

	PublishStatus PublishStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"publishStatus"`
	// PublishedAt ilk yayına alınma anıdır; doluysa slug artık değiştirilemez.
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	// GORM İlişkileri
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Template     Template     `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	BusinessHours []BusinessHour `gorm:"foreignKey:VCardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"businessHours"`
	Services      []CardService  `gorm:"foreignKey:VCardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`
	SocialLinks   []SocialLink   `gorm:"foreignKey:VCardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"socialLinks"`
	Testimonials  []Testimonial  `gorm:"foreignKey:VCardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"testimonials"`
}

// IsPublished kartvizit yayında mı kontrol eder.
func (v *VCard) IsPublished() bool {
	return v.PublishStatus == PublishStatusPublished
}
