package model

import (
	"time"

	"github.com/google/uuid"
)

type AdmissionStatus string

const (
	AdmissionStatusPending  AdmissionStatus = "pending"
	AdmissionStatusReviewed AdmissionStatus = "reviewed"
	AdmissionStatusAccepted AdmissionStatus = "accepted"
	AdmissionStatusRejected AdmissionStatus = "rejected"
)

// AdmissionForm is an application submitted through the public admissions form
type AdmissionForm struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SubmittedAt     time.Time       `gorm:"autoCreateTime;index" json:"submitted_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `gorm:"not null;default:1" json:"version"`
	StudentName     string          `gorm:"type:varchar(255);not null" json:"student_name"`
	ParentName      string          `gorm:"type:varchar(255)" json:"parent_name"`
	Email           string          `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone           string          `gorm:"type:varchar(30);not null" json:"phone"`
	DateOfBirth     string          `gorm:"type:varchar(20)" json:"date_of_birth,omitempty"`
	InstitutionCode string          `gorm:"type:varchar(50);not null;index" json:"institution_code"`
	Course          string          `gorm:"type:varchar(120);not null" json:"course"`
	PreviousSchool  string          `gorm:"type:varchar(255)" json:"previous_school,omitempty"`
	Address         string          `gorm:"type:text" json:"address,omitempty"`
	Message         string          `gorm:"type:text" json:"message,omitempty"`
	Status          AdmissionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
}

func (AdmissionForm) TableName() string {
	return "admission_forms"
}
