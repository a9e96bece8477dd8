package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden taşır.
// BaseModel hook'ları audit kolonlarını bu değerden doldurur.
const ContextUserIDKey contextKey = "user_id"

// ContextWithUserID context'e işlemi yapan kullanıcıyı ekler.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(string)
	return id, ok && id != ""
}

// BaseModel tüm ana tablolar için ortak kolonları içerir:
// otomatik ID, zaman damgaları, soft delete ve audit alanları.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *string        `gorm:"type:varchar(64);index" json:"-"`
	UpdatedBy *string        `gorm:"type:varchar(64)" json:"-"`
	DeletedBy *string        `gorm:"type:varchar(64)" json:"-"`
}

// BeforeCreate context'teki kullanıcıyı CreatedBy alanına yazar.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if uid, ok := UserIDFromContext(tx.Statement.Context); ok {
		m.CreatedBy = &uid
	}
	return nil
}

// BeforeUpdate context'teki kullanıcıyı UpdatedBy alanına yazar.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if uid, ok := UserIDFromContext(tx.Statement.Context); ok {
		m.UpdatedBy = &uid
	}
	return nil
}

// ChildModel kartvizite bağlı alt koleksiyon tabloları için ortak kolonlar.
// Alt kayıtlar parent yazımıyla birlikte komple değiştirildiği için
// soft delete ve audit kolonları tutulmaz.
type ChildModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
