package services

import (
	"context"
	"errors"
	"strings"

	"github.com/edugroup/site-api/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entityInstitution = "institution"

// InstitutionService reads and writes the group's institutions
type InstitutionService struct {
	db *gorm.DB
}

func NewInstitutionService(db *gorm.DB) *InstitutionService {
	return &InstitutionService{db: db}
}

type InstitutionInput struct {
	Name            string `json:"name" validate:"required,max=255"`
	Code            string `json:"code" validate:"required,max=50"`
	Address         string `json:"address"`
	City            string `json:"city" validate:"max=120"`
	Phone           string `json:"phone" validate:"max=30"`
	Email           string `json:"email" validate:"omitempty,email"`
	Website         string `json:"website" validate:"omitempty,url"`
	Description     string `json:"description"`
	EstablishedYear int    `json:"established_year" validate:"omitempty,gte=1800,lte=2100"`
	IsActive        *bool  `json:"is_active"`
}

type InstitutionPatch struct {
	Name            *string `json:"name" validate:"omitempty,max=255"`
	Code            *string `json:"code" validate:"omitempty,max=50"`
	Address         *string `json:"address"`
	City            *string `json:"city" validate:"omitempty,max=120"`
	Phone           *string `json:"phone" validate:"omitempty,max=30"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Website         *string `json:"website" validate:"omitempty,url"`
	Description     *string `json:"description"`
	EstablishedYear *int    `json:"established_year" validate:"omitempty,gte=1800,lte=2100"`
	IsActive        *bool   `json:"is_active"`
	ExpectedVersion *int    `json:"version"`
}

// ListInstitutions returns institutions ordered by name. With activeOnly set
// only active institutions are returned.
func (s *InstitutionService) ListInstitutions(ctx context.Context, activeOnly bool) []model.Institution {
	scopes := []scope{orderBy("name ASC")}
	if activeOnly {
		scopes = append(scopes, where("is_active = ?", true))
	}
	return listRows[model.Institution](ctx, s.db, entityInstitution, "list", scopes...)
}

// GetInstitutionByCode resolves the public slug of an active institution
func (s *InstitutionService) GetInstitutionByCode(ctx context.Context, code string) (*model.Institution, error) {
	var inst model.Institution
	err := s.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(code)), true).
		First(&inst).Error
	if err != nil {
		err = translate(err)
		if !errors.Is(err, ErrNotFound) {
			logFailure(entityInstitution, "get_by_code", uuid.Nil, err)
		}
		return nil, err
	}
	return &inst, nil
}

func (s *InstitutionService) GetInstitution(ctx context.Context, id uuid.UUID) (*model.Institution, error) {
	return getRow[model.Institution](ctx, s.db, entityInstitution, id)
}

func (s *InstitutionService) CreateInstitution(ctx context.Context, in InstitutionInput) (*model.Institution, error) {
	inst := &model.Institution{
		Version:         1,
		Name:            strings.TrimSpace(in.Name),
		Code:            strings.ToLower(strings.TrimSpace(in.Code)),
		Address:         in.Address,
		City:            in.City,
		Phone:           in.Phone,
		Email:           in.Email,
		Website:         in.Website,
		Description:     in.Description,
		EstablishedYear: in.EstablishedYear,
		IsActive:        in.IsActive == nil || *in.IsActive,
	}
	if err := createRow(ctx, s.db, entityInstitution, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *InstitutionService) UpdateInstitution(ctx context.Context, id uuid.UUID, p InstitutionPatch) (*model.Institution, error) {
	changes := patch{}
	setIf(changes, "name", p.Name)
	if p.Code != nil {
		changes["code"] = strings.ToLower(strings.TrimSpace(*p.Code))
	}
	setIf(changes, "address", p.Address)
	setIf(changes, "city", p.City)
	setIf(changes, "phone", p.Phone)
	setIf(changes, "email", p.Email)
	setIf(changes, "website", p.Website)
	setIf(changes, "description", p.Description)
	setIf(changes, "established_year", p.EstablishedYear)
	setIf(changes, "is_active", p.IsActive)
	return updateRow[model.Institution](ctx, s.db, entityInstitution, id, p.ExpectedVersion, changes)
}

// DeleteInstitution removes an institution. Its achievers are detached and its
// quick updates removed by the foreign key rules.
func (s *InstitutionService) DeleteInstitution(ctx context.Context, id uuid.UUID) error {
	return deleteRow[model.Institution](ctx, s.db, entityInstitution, id)
}
