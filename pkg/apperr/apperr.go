// Package apperr servis katmanının hata sınıflandırmasını tanımlar.
// Handler'lar HTTP status kodunu bu sentinel hatalara göre seçer.
package apperr

import "errors"

var (
	// ErrNotFound id/slug/şablon çözümlenemedi.
	ErrNotFound = errors.New("kayıt bulunamadı")
	// ErrConflict benzersizlik ihlali (örn. slug çakışması).
	ErrConflict = errors.New("kayıt çakışması")
	// ErrValidation girdi verisi geçersiz.
	ErrValidation = errors.New("geçersiz girdi")
	// ErrUnauthorized kimlik bilgisi yok veya geçersiz.
	ErrUnauthorized = errors.New("kimlik doğrulanamadı")
	// ErrForbidden kimlik geçerli ama hedef organizasyona yetkili değil.
	ErrForbidden = errors.New("bu işlem için yetkiniz yok")
	// ErrDependency alt sistem (örn. mirror yazımı) başarısız oldu.
	ErrDependency = errors.New("bağımlı işlem başarısız")
)

// IsNotFound hata zincirinde ErrNotFound var mı kontrol eder.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict hata zincirinde ErrConflict var mı kontrol eder.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation hata zincirinde ErrValidation var mı kontrol eder.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
