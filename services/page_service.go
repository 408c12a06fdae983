package services

import (
	"context"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"golang.org/x/sync/errgroup"
)

// How many items the home page shows per section
const (
	HomeAchieverCount = 8
	HomeNewsCount     = 6
	HomeMediaCount    = 6
)

// PageService assembles the data of whole public pages. Sections load in
// parallel and each settles on its own: a failing read leaves its section
// empty while the others still render.
type PageService struct {
	institutions *InstitutionService
	achievers    *AchieverService
	updates      *QuickUpdateService
	media        *MediaService
	carousel     *CarouselService
	news         *NewsService
}

func NewPageService(
	institutions *InstitutionService,
	achievers *AchieverService,
	updates *QuickUpdateService,
	media *MediaService,
	carousel *CarouselService,
	news *NewsService,
) *PageService {
	return &PageService{
		institutions: institutions,
		achievers:    achievers,
		updates:      updates,
		media:        media,
		carousel:     carousel,
		news:         news,
	}
}

type HomePage struct {
	Carousel     []model.CarouselImage `json:"carousel"`
	Achievers    []model.Achiever      `json:"achievers"`
	Updates      []model.QuickUpdate   `json:"updates"`
	News         []model.News          `json:"news"`
	Institutions []model.Institution   `json:"institutions"`
	Media        []model.MediaItem     `json:"media"`
}

type AchievementsPage struct {
	Achievers []model.Achiever `json:"achievers"`
	Stats     AchieverStats    `json:"stats"`
}

type InstitutionPage struct {
	Institution model.Institution   `json:"institution"`
	Updates     []model.QuickUpdate `json:"updates"`
	Achievers   []model.Achiever    `json:"achievers"`
}

type AdmissionsPage struct {
	Institutions []model.Institution `json:"institutions"`
	Updates      []model.QuickUpdate `json:"updates"`
}

func (s *PageService) HomePage(ctx context.Context) HomePage {
	var page HomePage
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		page.Carousel = s.carousel.GetCarouselImages(egCtx)
		return nil
	})
	eg.Go(func() error {
		page.Achievers = s.achievers.GetFeaturedAchievers(egCtx, HomeAchieverCount)
		return nil
	})
	eg.Go(func() error {
		page.Updates = s.updates.GetMainSiteUpdates(egCtx)
		return nil
	})
	eg.Go(func() error {
		page.News = s.news.GetPublishedNews(egCtx, filters.News{}, HomeNewsCount)
		return nil
	})
	eg.Go(func() error {
		page.Institutions = s.institutions.ListInstitutions(egCtx, true)
		return nil
	})
	eg.Go(func() error {
		page.Media = s.media.GetFeaturedMedia(egCtx, HomeMediaCount)
		return nil
	})

	_ = eg.Wait()
	return page
}

func (s *PageService) AchievementsPage(ctx context.Context) AchievementsPage {
	var page AchievementsPage
	eg, egCtx := errgroup.WithContext(ctx)

	active := model.StatusActive
	eg.Go(func() error {
		page.Achievers = s.achievers.GetAllAchievers(egCtx, filters.Achiever{Status: &active})
		return nil
	})
	eg.Go(func() error {
		page.Stats = s.achievers.GetAchieverStats(egCtx)
		return nil
	})

	_ = eg.Wait()
	return page
}

// InstitutionPage loads the page of the institution with the given code. An
// unknown or inactive code yields ErrNotFound.
func (s *PageService) InstitutionPage(ctx context.Context, code string) (*InstitutionPage, error) {
	inst, err := s.institutions.GetInstitutionByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	page := &InstitutionPage{Institution: *inst}
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		page.Updates = s.updates.GetInstitutionUpdates(egCtx, inst.ID)
		return nil
	})
	eg.Go(func() error {
		page.Achievers = s.achievers.GetAchieversByInstitution(egCtx, inst.ID)
		return nil
	})

	_ = eg.Wait()
	return page, nil
}

func (s *PageService) AdmissionsPage(ctx context.Context) AdmissionsPage {
	var page AdmissionsPage
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		page.Institutions = s.institutions.ListInstitutions(egCtx, true)
		return nil
	})
	eg.Go(func() error {
		kind := model.UpdateTypeAdmission
		active := model.StatusActive
		page.Updates = s.updates.GetAllQuickUpdates(egCtx, filters.QuickUpdate{Type: &kind, Status: &active})
		return nil
	})

	_ = eg.Wait()
	return page
}
