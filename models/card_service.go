package models

import "github.com/shopspring/decimal"

// CardService kartvizit üzerinde sunulan bir hizmettir.
type CardService struct {
	ChildModel
	VCardID     uint             `gorm:"not null;index" json:"-"`
	Title       string           `gorm:"type:varchar(150);not null" json:"title"`
	Description *string          `gorm:"type:text" json:"description,omitempty"`
	Price       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"price,omitempty"`
	Currency    *string          `gorm:"type:varchar(3)" json:"currency,omitempty"`
	// Order gösterim sırasıdır; çağıran tarafından verilir, store yeniden sıralamaz.
	Order int `gorm:"column:display_order;not null;default:0" json:"order"`
}
