package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStatus kullanıcı hesabının durumunu belirtir.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User yerel kullanıcı kaydıdır.
// ID dış kimlik sağlayıcısından gelen değerle atanabilir (caller-assigned);
// boş bırakılırsa BeforeCreate hook'unda uuid üretilir.
type User struct {
	ID            string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Email         string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	DisplayName   string         `gorm:"type:varchar(150);not null" json:"displayName"`
	PasswordHash  string         `gorm:"type:varchar(255);not null" json:"-"`
	EmailVerified bool           `gorm:"default:false" json:"emailVerified"`
	Status        UserStatus     `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	IsSystem      bool           `gorm:"default:false" json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate ID atanmamışsa uuid üretir.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
