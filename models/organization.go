package models

// Organization kartvizitlerin sahibi olan organizasyondur.
// Her kullanıcının sync sonrasında çözümlenebilir tek bir organizasyonu vardır;
// önce sahiplik, sonra üyelik eşleşmesine bakılır.
type Organization struct {
	BaseModel
	Name    string  `gorm:"type:varchar(150);not null" json:"name"`
	OwnerID string  `gorm:"type:varchar(64);not null;index" json:"ownerId"`
	Logo    *string `gorm:"type:varchar(500)" json:"logo,omitempty"`

	// GORM İlişkileri
	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Members []User `gorm:"many2many:organization_members;" json:"-"`
}
