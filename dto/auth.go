package dto

import (
	"fmt"

	"kartvizit.link/pkg/apperr"
)

// SyncRequest dış kimlik sağlayıcısından gelen, doğrulanmış kimlik yüküdür.
// ID sağlayıcının atadığı değerdir ve yerel kullanıcı kaydının primary key'i olur.
type SyncRequest struct {
	ID                  string `json:"id" validate:"required,max=64"`
	Email               string `json:"email" validate:"required,email,max=100"`
	DisplayName         string `json:"name" validate:"required,max=150"`
	PasswordPlaceholder string `json:"passwordPlaceholder"`
	EmailVerified       bool   `json:"emailVerified"`
}

// Validate istek alanlarını kontrol eder.
func (r *SyncRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

// RegisterRequest yerel hesap açma isteğidir.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=100"`
	DisplayName string `json:"name" validate:"required,max=150"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

// Validate istek alanlarını kontrol eder.
func (r *RegisterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}

// LoginRequest yerel hesap giriş isteğidir.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate istek alanlarını kontrol eder.
func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	return nil
}
