package cron

import (
	"context"
	"time"

	"github.com/edugroup/site-api/model"
	applog "github.com/edugroup/site-api/utils/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const jobTimeout = 5 * time.Minute

// NewsPublisher publishes scheduled articles that are due
type NewsPublisher interface {
	PublishDueNews(ctx context.Context, now time.Time) (int64, error)
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron *cron.Cron
	db   *gorm.DB
	news NewsPublisher
	now  func() time.Time
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, news NewsPublisher) *CronManager {
	return &CronManager{
		cron: cron.New(cron.WithSeconds()),
		db:   db,
		news: news,
		now:  time.Now,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	if err := m.registerJobs(); err != nil {
		return err
	}
	m.cron.Start()
	applog.L().Info("cron jobs started", zap.Int("jobs", len(m.cron.Entries())))
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	applog.L().Info("cron jobs stopped")
}

func (m *CronManager) registerJobs() error {
	jobs := []struct {
		spec string
		name string
		run  func(context.Context) (string, error)
	}{
		// Every minute
		{"0 * * * * *", jobPublishNews, m.PublishScheduledNews},
		// Daily at 3 AM
		{"0 0 3 * * *", jobPruneCronLogs, m.PruneCronLogs},
		// Weekly, Sunday 3:30 AM
		{"0 30 3 * * 0", jobPruneAuditLogs, m.PruneAuditLogs},
	}

	for _, j := range jobs {
		j := j
		if _, err := m.cron.AddFunc(j.spec, func() { m.Run(j.name, j.run) }); err != nil {
			return err
		}
	}
	return nil
}

// Run executes one job and records it in cron_job_logs
func (m *CronManager) Run(name string, fn func(context.Context) (string, error)) {
	started := m.now()
	entry := model.CronJobLog{
		JobName:   name,
		Status:    "running",
		StartedAt: started,
	}
	if err := m.db.Create(&entry).Error; err != nil {
		applog.L().Warn("could not record cron job start", zap.String("job", name), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	msg, err := fn(ctx)

	finished := m.now()
	updates := map[string]interface{}{
		"completed_at": finished,
		"duration":     finished.Sub(started).Milliseconds(),
	}
	if err != nil {
		applog.L().Error("cron job failed", zap.String("job", name), zap.Error(err))
		updates["status"] = "failed"
		updates["error_msg"] = err.Error()
	} else {
		applog.L().Debug("cron job completed", zap.String("job", name), zap.String("result", msg))
		updates["status"] = "completed"
		updates["message"] = msg
	}

	if entry.ID != 0 {
		m.db.Model(&model.CronJobLog{}).Where("id = ?", entry.ID).Updates(updates)
	}
}
