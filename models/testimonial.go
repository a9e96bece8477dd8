package models

// Testimonial kartvizit sahibine bırakılmış bir müşteri yorumudur.
type Testimonial struct {
	ChildModel
	VCardID uint    `gorm:"not null;index" json:"-"`
	Name    string  `gorm:"type:varchar(150);not null" json:"name"`
	Avatar  *string `gorm:"type:varchar(500)" json:"avatar,omitempty"`
	// Rating 1 ile 5 arasındadır (dahil); validasyon DTO katmanında yapılır.
	Rating int    `gorm:"not null" json:"rating"`
	Text   string `gorm:"type:text;not null" json:"text"`
	Order  int    `gorm:"column:display_order;not null;default:0" json:"order"`
}
