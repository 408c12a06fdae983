package manager

import (
	"context"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
)

type (
	InstitutionManager = Manager[model.Institution, services.InstitutionInput, services.InstitutionPatch]
	AchieverManager    = Manager[model.Achiever, services.AchieverInput, services.AchieverPatch]
	PaperManager       = Manager[model.Paper, services.PaperInput, services.PaperPatch]
	ResourceManager    = Manager[model.CareerResource, services.CareerResourceInput, services.CareerResourcePatch]
	QuickUpdateManager = Manager[model.QuickUpdate, services.QuickUpdateInput, services.QuickUpdatePatch]
	MediaManager       = Manager[model.MediaItem, services.MediaItemInput, services.MediaItemPatch]
	NewsManager        = Manager[model.News, services.NewsInput, services.NewsPatch]
	AdmissionManager   = Manager[model.AdmissionForm, services.AdmissionInput, services.AdmissionStatusUpdate]
)

func NewInstitutionManager(s *services.InstitutionService) *InstitutionManager {
	return New[model.Institution, services.InstitutionInput, services.InstitutionPatch](Funcs[model.Institution, services.InstitutionInput, services.InstitutionPatch]{
		ListFn:   func(ctx context.Context) []model.Institution { return s.ListInstitutions(ctx, false) },
		CreateFn: s.CreateInstitution,
		UpdateFn: s.UpdateInstitution,
		DeleteFn: s.DeleteInstitution,
	}, func(r model.Institution) uuid.UUID { return r.ID })
}

func NewAchieverManager(s *services.AchieverService) *AchieverManager {
	return New[model.Achiever, services.AchieverInput, services.AchieverPatch](Funcs[model.Achiever, services.AchieverInput, services.AchieverPatch]{
		ListFn:   func(ctx context.Context) []model.Achiever { return s.GetAllAchievers(ctx, filters.Achiever{}) },
		CreateFn: s.CreateAchiever,
		UpdateFn: s.UpdateAchiever,
		DeleteFn: s.DeleteAchiever,
	}, func(r model.Achiever) uuid.UUID { return r.ID })
}

func NewPaperManager(s *services.PaperService) *PaperManager {
	return New[model.Paper, services.PaperInput, services.PaperPatch](Funcs[model.Paper, services.PaperInput, services.PaperPatch]{
		ListFn:   func(ctx context.Context) []model.Paper { return s.GetPapers(ctx, filters.Paper{}) },
		CreateFn: s.CreatePaper,
		UpdateFn: s.UpdatePaper,
		DeleteFn: s.DeletePaper,
	}, func(r model.Paper) uuid.UUID { return r.ID })
}

func NewResourceManager(s *services.CareerResourceService) *ResourceManager {
	return New[model.CareerResource, services.CareerResourceInput, services.CareerResourcePatch](Funcs[model.CareerResource, services.CareerResourceInput, services.CareerResourcePatch]{
		ListFn: func(ctx context.Context) []model.CareerResource {
			return s.GetAllCareerResources(ctx, filters.Resource{})
		},
		CreateFn: s.CreateCareerResource,
		UpdateFn: s.UpdateCareerResource,
		DeleteFn: s.DeleteCareerResource,
	}, func(r model.CareerResource) uuid.UUID { return r.ID })
}

func NewQuickUpdateManager(s *services.QuickUpdateService) *QuickUpdateManager {
	return New[model.QuickUpdate, services.QuickUpdateInput, services.QuickUpdatePatch](Funcs[model.QuickUpdate, services.QuickUpdateInput, services.QuickUpdatePatch]{
		ListFn:   func(ctx context.Context) []model.QuickUpdate { return s.GetAllQuickUpdates(ctx, filters.QuickUpdate{}) },
		CreateFn: s.CreateQuickUpdate,
		UpdateFn: s.UpdateQuickUpdate,
		DeleteFn: s.DeleteQuickUpdate,
	}, func(r model.QuickUpdate) uuid.UUID { return r.ID })
}

func NewMediaManager(s *services.MediaService) *MediaManager {
	return New[model.MediaItem, services.MediaItemInput, services.MediaItemPatch](Funcs[model.MediaItem, services.MediaItemInput, services.MediaItemPatch]{
		ListFn:   func(ctx context.Context) []model.MediaItem { return s.GetMediaItems(ctx, filters.Media{}) },
		CreateFn: s.CreateMediaItem,
		UpdateFn: s.UpdateMediaItem,
		DeleteFn: s.DeleteMediaItem,
	}, func(r model.MediaItem) uuid.UUID { return r.ID })
}

func NewNewsManager(s *services.NewsService) *NewsManager {
	return New[model.News, services.NewsInput, services.NewsPatch](Funcs[model.News, services.NewsInput, services.NewsPatch]{
		ListFn:   func(ctx context.Context) []model.News { return s.GetNewsAdmin(ctx, filters.News{}) },
		CreateFn: s.CreateNews,
		UpdateFn: s.UpdateNews,
		DeleteFn: s.DeleteNews,
	}, func(r model.News) uuid.UUID { return r.ID })
}

// NewAdmissionManager creates through the public submission path, so the
// institution check still applies. Updates only move the status.
func NewAdmissionManager(s *services.AdmissionService) *AdmissionManager {
	return New[model.AdmissionForm, services.AdmissionInput, services.AdmissionStatusUpdate](Funcs[model.AdmissionForm, services.AdmissionInput, services.AdmissionStatusUpdate]{
		ListFn: func(ctx context.Context) []model.AdmissionForm {
			return s.GetAdmissions(ctx, filters.Admission{})
		},
		CreateFn: s.CreateAdmission,
		UpdateFn: s.UpdateAdmissionStatus,
		DeleteFn: s.DeleteAdmission,
	}, func(r model.AdmissionForm) uuid.UUID { return r.ID })
}
