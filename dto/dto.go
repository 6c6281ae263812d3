// Package dto holds the validated request contracts at the HTTP boundary.
// JSON fields are camelCase; mapping to the store's snake_case columns
// happens in the models.
package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *SendCodeRequest) Validate() error { return validate.Struct(r) }

type SignupRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	Name             string `json:"name" validate:"required"`
	UserType         string `json:"userType" validate:"required,oneof=student teacher admin"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

func (r *SignupRequest) Validate() error { return validate.Struct(r) }

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error { return validate.Struct(r) }

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (r *RefreshRequest) Validate() error { return validate.Struct(r) }

type CreateClassRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Level       string   `json:"level" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	Image       string   `json:"image" validate:"required,url"`
	Details     []string `json:"details"`
}

func (r *CreateClassRequest) Validate() error { return validate.Struct(r) }

type UpdateClassRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Level       *string  `json:"level"`
	Category    *string  `json:"category"`
	Type        *string  `json:"type"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Details     []string `json:"details"`
}

func (r *UpdateClassRequest) Validate() error { return validate.Struct(r) }

type CreateScheduleRequest struct {
	ClassID     string `json:"classId" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	ContactInfo string `json:"contactInfo"`
	ForceCreate bool   `json:"forceCreate"`
}

func (r *CreateScheduleRequest) Validate() error { return validate.Struct(r) }

type UpdateScheduleRequest struct {
	Status         *string `json:"status"`
	Date           *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time           *string `json:"time" validate:"omitempty,datetime=15:04"`
	ZoomLink       *string `json:"zoomLink"`
	GoogleDocsLink *string `json:"googleDocsLink"`
}

func (r *UpdateScheduleRequest) Validate() error { return validate.Struct(r) }

type UpdateUserRequest struct {
	Name                *string `json:"name"`
	ProfileImage        *string `json:"profileImage"`
	CertificationDocURL *string `json:"certificationDocUrl" validate:"omitempty,url"`
	IDDocURL            *string `json:"idDocUrl" validate:"omitempty,url"`
}

func (r *UpdateUserRequest) Validate() error { return validate.Struct(r) }
