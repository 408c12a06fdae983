package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (m *Institution) BeforeCreate(*gorm.DB) error    { assignID(&m.ID); return nil }
func (m *Achiever) BeforeCreate(*gorm.DB) error       { assignID(&m.ID); return nil }
func (m *Paper) BeforeCreate(*gorm.DB) error          { assignID(&m.ID); return nil }
func (m *CareerResource) BeforeCreate(*gorm.DB) error { assignID(&m.ID); return nil }
func (m *QuickUpdate) BeforeCreate(*gorm.DB) error    { assignID(&m.ID); return nil }
func (m *MediaItem) BeforeCreate(*gorm.DB) error      { assignID(&m.ID); return nil }
func (m *CarouselImage) BeforeCreate(*gorm.DB) error  { assignID(&m.ID); return nil }
func (m *News) BeforeCreate(*gorm.DB) error           { assignID(&m.ID); return nil }
func (m *AdmissionForm) BeforeCreate(*gorm.DB) error  { assignID(&m.ID); return nil }
func (m *AdminUser) BeforeCreate(*gorm.DB) error      { assignID(&m.ID); return nil }
func (m *AdminAuditLog) BeforeCreate(*gorm.DB) error  { assignID(&m.ID); return nil }

// All returns every model managed by AutoMigrate, parents first
func All() []interface{} {
	return []interface{}{
		&Institution{},
		&Achiever{},
		&Paper{},
		&CareerResource{},
		&QuickUpdate{},
		&MediaItem{},
		&CarouselImage{},
		&News{},
		&AdmissionForm{},
		&AdminUser{},
		&AdminAuditLog{},
		&CronJobLog{},
	}
}
