package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/utils/auth"
	applog "github.com/edugroup/site-api/utils/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedAdmin is the dashboard account created on first seed. An empty email
// or password skips it.
type SeedAdmin struct {
	Email    string
	Password string
	Name     string
}

// starter content, inserted only into empty tables
type seedTable struct {
	name  string
	model any
	rows  func() any
}

var starterContent = []seedTable{
	{name: "institutions", model: &model.Institution{}, rows: starterInstitutions},
	{name: "carousel_images", model: &model.CarouselImage{}, rows: starterSlides},
	{name: "quick_updates", model: &model.QuickUpdate{}, rows: starterUpdates},
}

// RunSeeds seeds the admin account and starter content. It is safe to run
// against a database that is already in use.
func RunSeeds(db *gorm.DB, admin SeedAdmin) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx, admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		for _, t := range starterContent {
			if err := seedIfEmpty(tx, t); err != nil {
				return fmt.Errorf("seed %s: %w", t.name, err)
			}
		}
		return nil
	})
}

func seedAdmin(tx *gorm.DB, admin SeedAdmin) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		applog.L().Warn("no admin credentials given, admin account not seeded")
		return nil
	}

	var existing int64
	if err := tx.Model(&model.AdminUser{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		applog.L().Info("admin account present", zap.String("email", email))
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	name := admin.Name
	if name == "" {
		name = "Site Administrator"
	}
	if err := tx.Create(&model.AdminUser{Email: email, PasswordHash: hash, Name: name}).Error; err != nil {
		return err
	}
	applog.L().Info("admin account created", zap.String("email", email))
	return nil
}

func seedIfEmpty(tx *gorm.DB, t seedTable) error {
	var n int64
	if err := tx.Model(t.model).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		applog.L().Debug("table not empty, starter rows skipped", zap.String("table", t.name))
		return nil
	}
	res := tx.Create(t.rows())
	if res.Error != nil {
		return res.Error
	}
	applog.L().Info("starter rows inserted", zap.String("table", t.name), zap.Int64("rows", res.RowsAffected))
	return nil
}

func starterInstitutions() any {
	return &[]model.Institution{
		{Code: "gps", Name: "Group Public School", City: "Jaipur", EstablishedYear: 1998, IsActive: true, Version: 1,
			Description: "CBSE affiliated senior secondary school"},
		{Code: "gace", Name: "Group Academy for Competitive Exams", City: "Jaipur", EstablishedYear: 2009, IsActive: true, Version: 1,
			Description: "Coaching for IIT-JEE, NEET and Sainik School entrance"},
		{Code: "ggc", Name: "Group Girls College", City: "Ajmer", EstablishedYear: 2012, IsActive: true, Version: 1,
			Description: "Undergraduate college for women"},
	}
}

func starterSlides() any {
	slides := []model.CarouselImage{
		{Title: "Welcome", ImageURL: "/images/carousel/welcome.jpg", AltText: "Campus front view"},
		{Title: "Results", ImageURL: "/images/carousel/results.jpg", AltText: "Toppers of the year"},
		{Title: "Admissions Open", ImageURL: "/images/carousel/admissions.jpg", AltText: "Admissions banner"},
	}
	for i := range slides {
		slides[i].SortOrder = i + 1
		slides[i].Status = model.StatusActive
		slides[i].Version = 1
	}
	return &slides
}

func starterUpdates() any {
	year := time.Now().Year()
	return &[]model.QuickUpdate{{
		Title:       fmt.Sprintf("Admissions open for session %d-%02d", year, (year+1)%100),
		Description: "Apply online through the admissions page.",
		Type:        model.UpdateTypeAdmission,
		Priority:    model.PriorityHigh,
		Link:        "/admissions",
		Status:      model.StatusActive,
		Version:     1,
	}}
}
