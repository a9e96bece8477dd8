package models

// SocialLink kartvizitteki bir sosyal medya bağlantısıdır.
type SocialLink struct {
	ChildModel
	VCardID  uint   `gorm:"not null;index" json:"-"`
	Platform string `gorm:"type:varchar(50);not null" json:"platform"`
	URL      string `gorm:"type:varchar(500);not null" json:"url"`
	Order    int    `gorm:"column:display_order;not null;default:0" json:"order"`
}
