package services

import (
	"context"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entityQuickUpdate = "quick_update"

// priorityOrder sorts high, medium, low regardless of how the store orders strings
const priorityOrder = "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END"

// QuickUpdateService manages the short notices of the updates feeds
type QuickUpdateService struct {
	db *gorm.DB
}

func NewQuickUpdateService(db *gorm.DB) *QuickUpdateService {
	return &QuickUpdateService{db: db}
}

type QuickUpdateInput struct {
	Title         string           `json:"title" validate:"required,max=255"`
	Description   string           `json:"description"`
	Type          model.UpdateType `json:"type" validate:"required,oneof=admission course scholarship facility announcement"`
	Priority      model.Priority   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Link          string           `json:"link" validate:"omitempty,max=512"`
	InstitutionID *uuid.UUID       `json:"institution_id"`
	ShowOnMain    bool             `json:"show_on_main"`
	Status        model.Status     `json:"status" validate:"omitempty,oneof=active inactive"`
}

// QuickUpdatePatch changes an update. Setting ClearInstitution moves the
// update back to the main site.
type QuickUpdatePatch struct {
	Title            *string           `json:"title" validate:"omitempty,max=255"`
	Description      *string           `json:"description"`
	Type             *model.UpdateType `json:"type" validate:"omitempty,oneof=admission course scholarship facility announcement"`
	Priority         *model.Priority   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Link             *string           `json:"link" validate:"omitempty,max=512"`
	InstitutionID    *uuid.UUID        `json:"institution_id"`
	ClearInstitution bool              `json:"clear_institution"`
	ShowOnMain       *bool             `json:"show_on_main"`
	Status           *model.Status     `json:"status" validate:"omitempty,oneof=active inactive"`
	ExpectedVersion  *int              `json:"version"`
}

func byPriority(db *gorm.DB) *gorm.DB {
	return db.Order(priorityOrder).Order("created_at DESC")
}

// GetMainSiteUpdates returns the active updates of the main site: updates
// without an institution plus institution updates promoted with show_on_main.
func (s *QuickUpdateService) GetMainSiteUpdates(ctx context.Context) []model.QuickUpdate {
	return listRows[model.QuickUpdate](ctx, s.db, entityQuickUpdate, "main_site",
		where("status = ?", model.StatusActive),
		where(s.db.Where("institution_id IS NULL").Or("show_on_main = ?", true)),
		byPriority)
}

// GetInstitutionUpdates returns the active updates scoped to one institution
func (s *QuickUpdateService) GetInstitutionUpdates(ctx context.Context, institutionID uuid.UUID) []model.QuickUpdate {
	return listRows[model.QuickUpdate](ctx, s.db, entityQuickUpdate, "by_institution",
		where("status = ? AND institution_id = ?", model.StatusActive, institutionID),
		byPriority)
}

// GetAllQuickUpdates is the admin read
func (s *QuickUpdateService) GetAllQuickUpdates(ctx context.Context, f filters.QuickUpdate) []model.QuickUpdate {
	return listRows[model.QuickUpdate](ctx, s.db, entityQuickUpdate, "list",
		f.Apply,
		byPriority)
}

func (s *QuickUpdateService) GetQuickUpdate(ctx context.Context, id uuid.UUID) (*model.QuickUpdate, error) {
	return getRow[model.QuickUpdate](ctx, s.db, entityQuickUpdate, id)
}

func (s *QuickUpdateService) CreateQuickUpdate(ctx context.Context, in QuickUpdateInput) (*model.QuickUpdate, error) {
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	u := &model.QuickUpdate{
		Version:       1,
		Title:         in.Title,
		Description:   in.Description,
		Type:          in.Type,
		Priority:      priority,
		Link:          in.Link,
		InstitutionID: in.InstitutionID,
		ShowOnMain:    in.ShowOnMain && in.InstitutionID != nil,
		Status:        statusOrActive(in.Status),
	}
	if err := createRow(ctx, s.db, entityQuickUpdate, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *QuickUpdateService) UpdateQuickUpdate(ctx context.Context, id uuid.UUID, p QuickUpdatePatch) (*model.QuickUpdate, error) {
	changes := patch{}
	setIf(changes, "title", p.Title)
	setIf(changes, "description", p.Description)
	setIf(changes, "type", p.Type)
	setIf(changes, "priority", p.Priority)
	setIf(changes, "link", p.Link)
	setIf(changes, "institution_id", p.InstitutionID)
	setIf(changes, "show_on_main", p.ShowOnMain)
	if p.ClearInstitution {
		changes["institution_id"] = nil
		changes["show_on_main"] = false
	}
	setIf(changes, "status", p.Status)
	return updateRow[model.QuickUpdate](ctx, s.db, entityQuickUpdate, id, p.ExpectedVersion, changes)
}

func (s *QuickUpdateService) DeleteQuickUpdate(ctx context.Context, id uuid.UUID) error {
	return deleteRow[model.QuickUpdate](ctx, s.db, entityQuickUpdate, id)
}
