// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"github.com/taibuivan/hortus/internal/platform/sec"
	"github.com/taibuivan/hortus/internal/platform/validate"
)

// ValidateCredentials checks the login form before it reaches the API.
func ValidateCredentials(credentials Credentials) error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, credentials.Username).
		Required(FieldPassword, credentials.Password)
	return validator.Err()
}

// ValidateRegistration checks the account creation form and normalizes the
// requested role to its canonical spelling.
func ValidateRegistration(input *RegisterInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldFirstName, input.FirstName, MaxNameLength).
		MaxLen(FieldLastName, input.LastName, MaxNameLength)

	if input.Role != "" {
		role, ok := sec.ParseRole(string(input.Role))
		validator.Custom(FieldRole, !ok, "Unknown role")
		input.Role = role
	}

	return validator.Err()
}
