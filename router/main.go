package router

import (
	"context"
	"time"

	"github.com/edugroup/site-api/carousel"
	"github.com/edugroup/site-api/config"
	"github.com/edugroup/site-api/database"
	"github.com/edugroup/site-api/handlers"
	achiever_handlers "github.com/edugroup/site-api/handlers/achiever"
	admin_handlers "github.com/edugroup/site-api/handlers/admin"
	admission_handlers "github.com/edugroup/site-api/handlers/admission"
	auth_handlers "github.com/edugroup/site-api/handlers/auth"
	carousel_handlers "github.com/edugroup/site-api/handlers/carousel"
	institution_handlers "github.com/edugroup/site-api/handlers/institution"
	media_handlers "github.com/edugroup/site-api/handlers/media"
	news_handlers "github.com/edugroup/site-api/handlers/news"
	page_handlers "github.com/edugroup/site-api/handlers/page"
	paper_handlers "github.com/edugroup/site-api/handlers/paper"
	resource_handlers "github.com/edugroup/site-api/handlers/resource"
	update_handlers "github.com/edugroup/site-api/handlers/update"
	upload_handlers "github.com/edugroup/site-api/handlers/upload"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils"
	"github.com/edugroup/site-api/utils/auth"
	"github.com/edugroup/site-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
)

// Dependencies carries everything the route table needs from app setup
type Dependencies struct {
	Store database.Storage
	Env   *config.EnvironmentVariables

	// Objects receives uploads; nil answers uploads with 503
	Objects services.ObjectStore
	// Notifier hears about new admission applications; may be nil
	Notifier services.AdmissionNotifier
	// Attempts backs login and admission throttling
	Attempts middleware.AttemptStore

	Stream carousel_handlers.StreamConfig

	// RateLimit caps requests per client per minute; 0 disables the limiter
	RateLimit int
	AccessLog bool
}

// Services is the Query Layer built for one store
type Services struct {
	Institutions *services.InstitutionService
	Achievers    *services.AchieverService
	Papers       *services.PaperService
	Resources    *services.CareerResourceService
	Updates      *services.QuickUpdateService
	Media        *services.MediaService
	Carousel     *services.CarouselService
	News         *services.NewsService
	Admissions   *services.AdmissionService
	Pages        *services.PageService
	Uploads      *services.UploadService
}

func newServices(deps Dependencies) *Services {
	db := deps.Store.DB()
	s := &Services{
		Institutions: services.NewInstitutionService(db),
		Achievers:    services.NewAchieverService(db),
		Papers:       services.NewPaperService(db),
		Resources:    services.NewCareerResourceService(db),
		Updates:      services.NewQuickUpdateService(db),
		Media:        services.NewMediaService(db),
		Carousel:     services.NewCarouselService(db),
		News:         services.NewNewsService(db),
		Admissions:   services.NewAdmissionService(db, deps.Notifier),
		Uploads:      services.NewUploadService(deps.Objects),
	}
	s.Pages = services.NewPageService(s.Institutions, s.Achievers, s.Updates, s.Media, s.Carousel, s.News)
	return s
}

// carouselCounters reports the item count each public carousel rotates over
func carouselCounters(s *Services) map[carousel.Kind]carousel_handlers.ItemCounter {
	return map[carousel.Kind]carousel_handlers.ItemCounter{
		carousel.KindImages: func(ctx context.Context) int {
			return len(s.Carousel.GetCarouselImages(ctx))
		},
		carousel.KindNews: func(ctx context.Context) int {
			return len(s.News.GetPublishedNews(ctx, filters.News{}, services.HomeNewsCount))
		},
		carousel.KindUpdates: func(ctx context.Context) int {
			return len(s.Updates.GetMainSiteUpdates(ctx))
		},
		carousel.KindAchievers: func(ctx context.Context) int {
			return len(s.Achievers.GetFeaturedAchievers(ctx, services.HomeAchieverCount))
		},
	}
}

func SetupRoutes(app *fiber.App, deps Dependencies) *Services {
	env := deps.Env
	db := deps.Store.DB()

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWTSecret(),
		Expiry: auth.DefaultSessionExpiry,
		Issuer: env.JWT_ISSUER,
	})
	tiers := middleware.NewTiers(env.PUBLIC_ANON_KEY, env.SERVICE_ROLE_KEY, jwtManager)

	var loginThrottle, admissionThrottle *middleware.BruteForceProtection
	if deps.Attempts != nil {
		loginThrottle = middleware.NewBruteForceProtection(deps.Attempts, "admin_login")
		admissionThrottle = middleware.NewBruteForceProtection(deps.Attempts, "admission").
			WithLockouts(time.Hour, []middleware.Lockout{{After: 10, Duration: time.Hour}})
	}

	svc := newServices(deps)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, loginThrottle)
	auditHandler := admin_handlers.NewAuditHandler(db)
	institutionHandler := institution_handlers.NewInstitutionHandler(svc.Institutions)
	achieverHandler := achiever_handlers.NewAchieverHandler(svc.Achievers)
	paperHandler := paper_handlers.NewPaperHandler(svc.Papers)
	resourceHandler := resource_handlers.NewResourceHandler(svc.Resources)
	updateHandler := update_handlers.NewUpdateHandler(svc.Updates)
	mediaHandler := media_handlers.NewMediaHandler(svc.Media)
	carouselHandler := carousel_handlers.NewCarouselHandler(svc.Carousel, carouselCounters(svc), deps.Stream)
	newsHandler := news_handlers.NewNewsHandler(svc.News)
	admissionHandler := admission_handlers.NewAdmissionHandler(svc.Admissions, admissionThrottle)
	pageHandler := page_handlers.NewPageHandler(svc.Pages)
	uploadHandler := upload_handlers.NewUploadHandler(svc.Uploads)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: deps.RateLimit,
		RateLimitWindow:   time.Minute,
		AccessLog:         deps.AccessLog,
	})

	// Health check endpoint (no credentials)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, deps.Store))

	api := app.Group("/api/v1")

	// Admin login sits outside both tiers
	if loginThrottle != nil {
		api.Post("/admin/login", loginThrottle.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		api.Post("/admin/login", authHandler.Login)
	}

	// Admin tier
	adminGroup := api.Group("/admin", tiers.Admin())
	adminGroup.Get("/me", authHandler.Me)

	audit := adminGroup.Group("/audit")
	audit.Get("/", auditHandler.ListAuditLogs)
	audit.Get("/:id", auditHandler.GetAuditLog)

	institutions := adminGroup.Group("/institutions", middleware.AdminAuditLog(db, "institution"))
	institutions.Get("/", institutionHandler.AdminListInstitutions)
	institutions.Post("/", institutionHandler.CreateInstitution)
	institutions.Get("/:id", institutionHandler.AdminGetInstitution)
	institutions.Put("/:id", institutionHandler.UpdateInstitution)
	institutions.Delete("/:id", institutionHandler.DeleteInstitution)

	achievers := adminGroup.Group("/achievers", middleware.AdminAuditLog(db, "achiever"))
	achievers.Get("/", achieverHandler.AdminListAchievers)
	achievers.Post("/", achieverHandler.CreateAchiever)
	achievers.Get("/:id", achieverHandler.GetAchiever)
	achievers.Put("/:id", achieverHandler.UpdateAchiever)
	achievers.Delete("/:id", achieverHandler.DeleteAchiever)

	papers := adminGroup.Group("/papers", middleware.AdminAuditLog(db, "paper"))
	papers.Get("/", paperHandler.AdminListPapers)
	papers.Post("/", paperHandler.CreatePaper)
	papers.Get("/:id", paperHandler.AdminGetPaper)
	papers.Put("/:id", paperHandler.UpdatePaper)
	papers.Delete("/:id", paperHandler.DeletePaper)

	resources := adminGroup.Group("/resources", middleware.AdminAuditLog(db, "career_resource"))
	resources.Get("/", resourceHandler.AdminListResources)
	resources.Post("/", resourceHandler.CreateResource)
	resources.Get("/:id", resourceHandler.AdminGetResource)
	resources.Put("/:id", resourceHandler.UpdateResource)
	resources.Delete("/:id", resourceHandler.DeleteResource)

	updates := adminGroup.Group("/updates", middleware.AdminAuditLog(db, "quick_update"))
	updates.Get("/", updateHandler.AdminListUpdates)
	updates.Post("/", updateHandler.CreateUpdate)
	updates.Get("/:id", updateHandler.GetUpdate)
	updates.Put("/:id", updateHandler.UpdateUpdate)
	updates.Delete("/:id", updateHandler.DeleteUpdate)

	media := adminGroup.Group("/media", middleware.AdminAuditLog(db, "media_item"))
	media.Get("/", mediaHandler.AdminListMedia)
	media.Post("/", mediaHandler.CreateMediaItem)
	media.Get("/:id", mediaHandler.GetMediaItem)
	media.Put("/:id", mediaHandler.UpdateMediaItem)
	media.Delete("/:id", mediaHandler.DeleteMediaItem)

	slides := adminGroup.Group("/carousel", middleware.AdminAuditLog(db, "carousel_image"))
	slides.Get("/", carouselHandler.AdminListImages)
	slides.Post("/", carouselHandler.CreateImage)
	slides.Put("/order", carouselHandler.SetOrder)
	slides.Get("/:id", carouselHandler.GetImage)
	slides.Put("/:id", carouselHandler.UpdateImage)
	slides.Delete("/:id", carouselHandler.DeleteImage)
	slides.Post("/:id/move", carouselHandler.MoveImage)

	news := adminGroup.Group("/news", middleware.AdminAuditLog(db, "news"))
	news.Get("/", newsHandler.AdminListNews)
	news.Post("/", newsHandler.CreateArticle)
	news.Get("/:id", newsHandler.AdminGetArticle)
	news.Put("/:id", newsHandler.UpdateArticle)
	news.Delete("/:id", newsHandler.DeleteArticle)

	admissions := adminGroup.Group("/admissions", middleware.AdminAuditLog(db, "admission"))
	admissions.Get("/", admissionHandler.ListApplications)
	admissions.Get("/stats", admissionHandler.ApplicationStats)
	admissions.Get("/:id", admissionHandler.GetApplication)
	admissions.Patch("/:id/status", admissionHandler.UpdateStatus)
	admissions.Delete("/:id", admissionHandler.DeleteApplication)

	adminGroup.Post("/uploads", middleware.AdminAuditLog(db, "upload"), uploadHandler.Upload)

	// Public tier
	public := api.Group("", tiers.Public())

	pages := public.Group("/pages")
	pages.Get("/home", pageHandler.Home)
	pages.Get("/achievements", pageHandler.Achievements)
	pages.Get("/admissions", pageHandler.Admissions)
	pages.Get("/institutions/:code", pageHandler.Institution)

	public.Get("/institutions", institutionHandler.ListInstitutions)
	public.Get("/institutions/:code", institutionHandler.GetInstitution)

	public.Get("/achievers", achieverHandler.ListAchievers)
	public.Get("/achievers/featured", achieverHandler.FeaturedAchievers)
	public.Get("/achievers/stats", achieverHandler.AchieverStats)

	public.Get("/papers", paperHandler.ListPapers)
	public.Get("/papers/:id", paperHandler.GetPaper)
	public.Post("/papers/:id/download", paperHandler.DownloadPaper)

	public.Get("/resources", resourceHandler.ListResources)
	public.Get("/resources/:id", resourceHandler.GetResource)
	public.Post("/resources/:id/view", resourceHandler.ViewResource)

	public.Get("/updates", updateHandler.ListUpdates)

	public.Get("/media", mediaHandler.ListMedia)
	public.Get("/media/featured", mediaHandler.FeaturedMedia)

	public.Get("/carousel", carouselHandler.ListImages)
	public.Get("/carousel/stream", carouselHandler.Stream)

	public.Get("/news", newsHandler.ListNews)
	public.Get("/news/:id", newsHandler.GetArticle)
	public.Post("/news/:id/view", newsHandler.ViewArticle)
	public.Post("/news/:id/like", newsHandler.LikeArticle)

	public.Post("/admissions", admissionHandler.SubmitApplication)

	return svc
}
