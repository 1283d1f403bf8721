package auth

import "strings"

// LoginDTO is the transport shape used by the HTTP handler to accept sign-in requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SwitchRoleDTO selects which seeded role experience to preview. Demo only.
type SwitchRoleDTO struct {
	Role string `json:"role"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is not valid"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d SwitchRoleDTO) Validate() error {
	if d.Role == "" {
		return ValidationError{Msg: "role is required"}
	}
	return nil
}
