package validators

import (
	"errors"
	"strings"
)

const MaxTemplateLen = 1024

var (
	ErrEmptyName        = errors.New("name must be specified")
	ErrEmptyPassword    = errors.New("password must be specified")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrTemplateTooLong  = errors.New("format is too long")
)

// ValidateRegistration checks a sign-up form. confirm must repeat password.
func ValidateRegistration(name, password, confirm string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if password == "" {
		return ErrEmptyPassword
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func ValidateTemplate(template string) error {
	if len(template) > MaxTemplateLen {
		return ErrTemplateTooLong
	}
	return nil
}
