package forms

import (
	"net/url"
	"strings"

	"catalog-service/internal/model"
)

// ContactForm holds a contact-page submission
type ContactForm struct {
	Name    string
	Phone   string
	Message string
}

// BindContactForm reads contact fields from submitted values
func BindContactForm(values url.Values) *ContactForm {
	return &ContactForm{
		Name:    strings.TrimSpace(values.Get("name")),
		Phone:   strings.TrimSpace(values.Get("phone")),
		Message: strings.TrimSpace(values.Get("message")),
	}
}

// Validate checks entity constraints
func (f *ContactForm) Validate(errs Errors) {
	if f.Name == "" {
		errs.Add("name", "name is required")
	} else if len(f.Name) > 100 {
		errs.Add("name", "name must be at most 100 characters")
	}
	if f.Phone == "" {
		errs.Add("phone", "phone is required")
	} else if len(f.Phone) > 12 {
		errs.Add("phone", "phone must be at most 12 characters")
	}
	if f.Message == "" {
		errs.Add("message", "message is required")
	}
}

// Buyer builds the record to persist
func (f *ContactForm) Buyer() *model.Buyer {
	return &model.Buyer{
		Name:    f.Name,
		Phone:   f.Phone,
		Message: f.Message,
	}
}
