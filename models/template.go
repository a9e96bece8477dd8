package models

import "gorm.io/datatypes"

// TemplateStatus şablonun yayın durumunu belirtir.
type TemplateStatus string

const (
	TemplateStatusDraft TemplateStatus = "DRAFT"
	TemplateStatusLive  TemplateStatus = "LIVE"
)

// Template kartvizitlerin referans verdiği tema/yerleşim tanımıdır.
// Kartvizit tarafından sadece ID ile referans alınır, asla kopyalanmaz;
// bu çekirdekte salt okunurdur ve seeder ile yüklenir.
type Template struct {
	BaseModel
	Name    string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Version int            `gorm:"not null;default:1" json:"version"`
	Config  datatypes.JSON `gorm:"type:jsonb" json:"config"`
	Status  TemplateStatus `gorm:"type:varchar(20);default:'DRAFT';index" json:"status"`
	Preview *string        `gorm:"type:varchar(500)" json:"preview,omitempty"`
}

const (
	TemplateNameClassic = "CLASSIC"
	TemplateNameModern  = "MODERN"
	TemplateNameMinimal = "MINIMAL"
)
