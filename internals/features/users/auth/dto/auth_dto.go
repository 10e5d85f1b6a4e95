package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *AdminLoginRequest) Validate() error { return validate.Struct(r) }

type StudentLoginRequest struct {
	SID      string `json:"sid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *StudentLoginRequest) Validate() error { return validate.Struct(r) }

// LoginResponse hands the client its opaque token. The same token rides
// the HTTP-only cookie; the body copy is for non-browser clients.
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	SID       string `json:"sid,omitempty"`
	ExpiresAt string `json:"expires_at"`
}
