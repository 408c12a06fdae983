package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	applog "github.com/edugroup/site-api/utils/logger"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const entityAdmission = "admission_form"

const (
	msgSubmitted     = "Application submitted successfully! We will contact you soon."
	msgSubmitFailed  = "Failed to submit application. Please try again."
	msgUnknownSchool = "Please choose a valid institution."
)

// AdmissionNotifier is told about every stored application
type AdmissionNotifier interface {
	NotifyAdmission(form model.AdmissionForm) error
}

// AdmissionService stores applications from the public admissions form and
// lets admins triage them
type AdmissionService struct {
	db        *gorm.DB
	validator *validation.Validator
	notifier  AdmissionNotifier
	async     bool
}

func NewAdmissionService(db *gorm.DB, notifier AdmissionNotifier) *AdmissionService {
	return &AdmissionService{
		db:        db,
		validator: validation.NewValidator(),
		notifier:  notifier,
		async:     true,
	}
}

type AdmissionInput struct {
	StudentName     string `json:"student_name" validate:"required,max=255"`
	ParentName      string `json:"parent_name" validate:"max=255"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=7,max=30"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	InstitutionCode string `json:"institution_code" validate:"required,max=50"`
	Course          string `json:"course" validate:"required,max=120"`
	PreviousSchool  string `json:"previous_school" validate:"max=255"`
	Address         string `json:"address"`
	Message         string `json:"message" validate:"max=2000"`
}

// SubmissionResult is what the public form shows after a submission
type SubmissionResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	ID      *uuid.UUID `json:"id,omitempty"`
	// Rejected is set when the form itself was refused, as opposed to a
	// store failure
	Rejected bool `json:"-"`
}

type AdmissionStatusUpdate struct {
	Status          model.AdmissionStatus `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
	ExpectedVersion *int                  `json:"version"`
}

// AdmissionStats counts applications per status
type AdmissionStats struct {
	Total    int64                           `json:"total"`
	ByStatus map[model.AdmissionStatus]int64 `json:"by_status"`
}

// SubmitAdmission stores a new application with status pending. Failures are
// reported through the result; nothing is returned as an error so the form
// can always render a message.
func (s *AdmissionService) SubmitAdmission(ctx context.Context, in AdmissionInput) SubmissionResult {
	if err := s.validator.ValidateStruct(in); err != nil {
		return SubmissionResult{Success: false, Message: describeValidation(err), Rejected: true}
	}

	code := strings.ToLower(strings.TrimSpace(in.InstitutionCode))
	var known int64
	if err := s.db.WithContext(ctx).Model(&model.Institution{}).
		Where("code = ? AND is_active = ?", code, true).
		Count(&known).Error; err != nil {
		logFailure(entityAdmission, "submit", uuid.Nil, err)
		return SubmissionResult{Success: false, Message: msgSubmitFailed}
	}
	if known == 0 {
		return SubmissionResult{Success: false, Message: msgUnknownSchool, Rejected: true}
	}

	form := &model.AdmissionForm{
		Version:         1,
		StudentName:     strings.TrimSpace(in.StudentName),
		ParentName:      strings.TrimSpace(in.ParentName),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           strings.TrimSpace(in.Phone),
		DateOfBirth:     in.DateOfBirth,
		InstitutionCode: code,
		Course:          in.Course,
		PreviousSchool:  in.PreviousSchool,
		Address:         in.Address,
		Message:         in.Message,
		Status:          model.AdmissionStatusPending,
	}
	if err := createRow(ctx, s.db, entityAdmission, form); err != nil {
		return SubmissionResult{Success: false, Message: msgSubmitFailed}
	}

	s.notify(*form)
	return SubmissionResult{Success: true, Message: msgSubmitted, ID: &form.ID}
}

// CreateAdmission submits in like the public form and returns the stored row.
// A refused form reports ErrInvalidInput with the form's message.
func (s *AdmissionService) CreateAdmission(ctx context.Context, in AdmissionInput) (*model.AdmissionForm, error) {
	res := s.SubmitAdmission(ctx, in)
	switch {
	case res.Rejected:
		return nil, fmt.Errorf("create %s: %s: %w", entityAdmission, res.Message, ErrInvalidInput)
	case !res.Success:
		return nil, fmt.Errorf("create %s: %s", entityAdmission, res.Message)
	}
	return s.GetAdmission(ctx, *res.ID)
}

func (s *AdmissionService) notify(form model.AdmissionForm) {
	if s.notifier == nil {
		return
	}
	send := func() {
		if err := s.notifier.NotifyAdmission(form); err != nil {
			applog.L().Warn("admission notification failed",
				zap.Stringer("admission_id", form.ID),
				zap.Error(err))
		}
	}
	if s.async {
		go send()
		return
	}
	send()
}

// GetAdmissions returns applications matching f, latest submission first
func (s *AdmissionService) GetAdmissions(ctx context.Context, f filters.Admission) []model.AdmissionForm {
	return listRows[model.AdmissionForm](ctx, s.db, entityAdmission, "list",
		f.Apply,
		orderBy("submitted_at DESC"))
}

func (s *AdmissionService) GetAdmission(ctx context.Context, id uuid.UUID) (*model.AdmissionForm, error) {
	return getRow[model.AdmissionForm](ctx, s.db, entityAdmission, id)
}

// UpdateAdmissionStatus sets any status from any status
func (s *AdmissionService) UpdateAdmissionStatus(ctx context.Context, id uuid.UUID, u AdmissionStatusUpdate) (*model.AdmissionForm, error) {
	return updateRow[model.AdmissionForm](ctx, s.db, entityAdmission, id, u.ExpectedVersion,
		patch{"status": u.Status})
}

func (s *AdmissionService) DeleteAdmission(ctx context.Context, id uuid.UUID) error {
	return deleteRow[model.AdmissionForm](ctx, s.db, entityAdmission, id)
}

func (s *AdmissionService) GetAdmissionStats(ctx context.Context) AdmissionStats {
	stats := AdmissionStats{ByStatus: map[model.AdmissionStatus]int64{
		model.AdmissionStatusPending:  0,
		model.AdmissionStatusReviewed: 0,
		model.AdmissionStatusAccepted: 0,
		model.AdmissionStatusRejected: 0,
	}}

	var rows []struct {
		Status model.AdmissionStatus
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&model.AdmissionForm{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		applog.L().Error("read failed",
			zap.String("entity", entityAdmission),
			zap.String("op", "stats"),
			zap.Error(err))
		return stats
	}

	for _, r := range rows {
		stats.ByStatus[r.Status] = r.Count
		stats.Total += r.Count
	}
	return stats
}

func describeValidation(err error) string {
	fields := validation.FormatValidationErrors(err)
	if len(fields) == 0 {
		return msgSubmitFailed
	}
	return validation.Join(fields)
}
