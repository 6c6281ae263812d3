package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserType string

const (
	TypeStudent UserType = "student"
	TypeTeacher UserType = "teacher"
	TypeAdmin   UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case TypeStudent, TypeTeacher, TypeAdmin:
		return true
	}
	return false
}

type VerificationStatus string

const (
	VerificationNone     VerificationStatus = "none"
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
)

// User is an account record. IsTeacher is only ever set true together with
// VerificationStatus = verified (admin approval); see services.Users.Approve.
type User struct {
	ID                  string             `json:"id" gorm:"type:uuid;primaryKey"`
	Email               string             `json:"email" gorm:"uniqueIndex"`
	PasswordHash        string             `json:"-" gorm:"column:password_hash"`
	Name                string             `json:"name"`
	UserType            UserType           `json:"userType" gorm:"column:user_type"`
	IsTeacher           bool               `json:"isTeacher" gorm:"column:is_teacher"`
	VerificationStatus  VerificationStatus `json:"verificationStatus" gorm:"column:verification_status"`
	ProfileImage        string             `json:"profileImage,omitempty" gorm:"column:profile_image"`
	CertificationDocURL string             `json:"certificationDocUrl,omitempty" gorm:"column:certification_doc_url"`
	IDDocURL            string             `json:"idDocUrl,omitempty" gorm:"column:id_doc_url"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.VerificationStatus == "" {
		u.VerificationStatus = VerificationNone
	}
	return nil
}
