package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/pkg/apperr"
)

func strPtr(s string) *string { return &s }
func uintPtr(u uint) *uint    { return &u }

func validSpec() VCardSpec {
	return VCardSpec{
		Slug:       strPtr("acme"),
		TemplateID: uintPtr(1),
		Title:      strPtr("Acme"),
		Name:       strPtr("Jane Doe"),
	}
}

func TestVCardSpecValid(t *testing.T) {
	spec := validSpec()
	spec.Website = strPtr("https://acme.example.com")
	spec.SocialLinks = &[]SocialLinkSpec{
		{Platform: "linkedin", URL: "https://linkedin.com/company/acme", Order: 1},
	}
	spec.Testimonials = &[]TestimonialSpec{
		{Name: "Ali", Rating: 5, Text: "Harika", Order: 1},
	}
	spec.BusinessHours = &[]BusinessHourSpec{
		{Day: "MONDAY", OpenTime: strPtr("09:00"), CloseTime: strPtr("18:00")},
	}
	require.NoError(t, spec.Validate())
	require.NoError(t, spec.RequireCreateFields())
}

func TestVCardSpecRejectsBadURL(t *testing.T) {
	spec := validSpec()
	spec.SocialLinks = &[]SocialLinkSpec{{Platform: "x", URL: "url-degil", Order: 1}}
	assert.True(t, apperr.IsValidation(spec.Validate()))

	spec = validSpec()
	spec.Website = strPtr("hic-url-degil")
	assert.True(t, apperr.IsValidation(spec.Validate()))
}

func TestVCardSpecRejectsRatingOutOfRange(t *testing.T) {
	for _, rating := range []int{0, 6} {
		spec := validSpec()
		spec.Testimonials = &[]TestimonialSpec{{Name: "Ali", Rating: rating, Text: "t", Order: 1}}
		assert.True(t, apperr.IsValidation(spec.Validate()), "rating %d kabul edilmemeli", rating)
	}
}

func TestVCardSpecRejectsUnknownWeekday(t *testing.T) {
	spec := validSpec()
	spec.BusinessHours = &[]BusinessHourSpec{{Day: "FUNDAY"}}
	assert.True(t, apperr.IsValidation(spec.Validate()))
}

func TestVCardSpecRejectsUnknownPublishStatus(t *testing.T) {
	spec := validSpec()
	spec.PublishStatus = strPtr("ARCHIVED")
	assert.True(t, apperr.IsValidation(spec.Validate()))
}

func TestRequireCreateFields(t *testing.T) {
	spec := validSpec()
	spec.Title = nil
	assert.True(t, apperr.IsValidation(spec.RequireCreateFields()))

	spec = validSpec()
	spec.Name = strPtr("")
	assert.True(t, apperr.IsValidation(spec.RequireCreateFields()))

	spec = validSpec()
	spec.TemplateID = nil
	assert.True(t, apperr.IsValidation(spec.RequireCreateFields()))

	// Slug opsiyoneldir.
	spec = validSpec()
	spec.Slug = nil
	assert.NoError(t, spec.RequireCreateFields())
}