package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/edugroup/site-api/model"
)

const (
	jobPublishNews    = "publish_scheduled_news"
	jobPruneCronLogs  = "prune_cron_logs"
	jobPruneAuditLogs = "prune_audit_logs"

	cronLogRetention  = 30 * 24 * time.Hour
	auditLogRetention = 180 * 24 * time.Hour
)

// PublishScheduledNews publishes scheduled articles whose publish time has passed
func (m *CronManager) PublishScheduledNews(ctx context.Context) (string, error) {
	n, err := m.news.PublishDueNews(ctx, m.now())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("published %d articles", n), nil
}

// PruneCronLogs deletes job records older than thirty days
func (m *CronManager) PruneCronLogs(ctx context.Context) (string, error) {
	cutoff := m.now().Add(-cronLogRetention)
	res := m.db.WithContext(ctx).Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if res.Error != nil {
		return "", fmt.Errorf("prune cron logs: %w", res.Error)
	}
	return fmt.Sprintf("deleted %d job records", res.RowsAffected), nil
}

// PruneAuditLogs deletes admin audit entries older than six months
func (m *CronManager) PruneAuditLogs(ctx context.Context) (string, error) {
	cutoff := m.now().Add(-auditLogRetention)
	res := m.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.AdminAuditLog{})
	if res.Error != nil {
		return "", fmt.Errorf("prune audit logs: %w", res.Error)
	}
	return fmt.Sprintf("deleted %d audit entries", res.RowsAffected), nil
}
