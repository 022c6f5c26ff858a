// Package validation provides pure input validators. Each validator returns a
// field-to-message map and an ok flag; none of them touch the store.
package validation

import (
	"regexp"

	"devconnect/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RegisterInput is the request body for user registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// Password2 is the confirmation field and must match Password.
	Password2 string `json:"password2"`
}

// ValidateRegister checks registration input.
func ValidateRegister(in RegisterInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if len(in.Name) < 2 || len(in.Name) > 30 {
		errs["name"] = "Name must be between 2 and 30 characters"
	}
	if in.Name == "" {
		errs["name"] = "Name field is required"
	}

	if !emailRegex.MatchString(in.Email) {
		errs["email"] = "Email is invalid"
	}
	if in.Email == "" {
		errs["email"] = "Email field is required"
	}

	if len(in.Password) < 6 || len(in.Password) > 30 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if in.Password == "" {
		errs["password"] = "Password field is required"
	}

	if in.Password2 != in.Password {
		errs["password2"] = "Passwords must match"
	}
	if in.Password2 == "" {
		errs["password2"] = "Confirm password field is required"
	}

	return errs, len(errs) == 0
}

// LoginInput is the request body for login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateLogin checks login input.
func ValidateLogin(in LoginInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if !emailRegex.MatchString(in.Email) {
		errs["email"] = "Email is invalid"
	}
	if in.Email == "" {
		errs["email"] = "Email field is required"
	}

	if in.Password == "" {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}
