package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edugroup/site-api/database/dbtest"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishScheduledNewsRecordsRun(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	news := services.NewNewsService(db)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	due := now.Add(-time.Minute)
	article, err := news.CreateNews(ctx, services.NewsInput{
		Title: "Results", Content: "x", Status: model.NewsStatusScheduled, PublishAt: &due,
	})
	require.NoError(t, err)

	m := NewCronManager(db, news)
	m.now = func() time.Time { return now }
	m.Run(jobPublishNews, m.PublishScheduledNews)

	got, err := news.GetNews(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NewsStatusPublished, got.Status)

	var logs []model.CronJobLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, jobPublishNews, logs[0].JobName)
	assert.Equal(t, "completed", logs[0].Status)
	assert.Equal(t, "published 1 articles", logs[0].Message)
	assert.NotNil(t, logs[0].CompletedAt)
}

func TestRunRecordsFailure(t *testing.T) {
	db := dbtest.Open(t)
	m := NewCronManager(db, services.NewNewsService(db))

	m.Run("broken", func(context.Context) (string, error) {
		return "", errors.New("boom")
	})

	var entry model.CronJobLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "failed", entry.Status)
	assert.Equal(t, "boom", entry.ErrorMsg)
}

func TestPruneCronLogs(t *testing.T) {
	db := dbtest.Open(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	m := NewCronManager(db, services.NewNewsService(db))
	m.now = func() time.Time { return now }

	require.NoError(t, db.Create(&[]model.CronJobLog{
		{JobName: "old", Status: "completed", StartedAt: now.Add(-31 * 24 * time.Hour)},
		{JobName: "recent", Status: "completed", StartedAt: now.Add(-time.Hour)},
	}).Error)

	msg, err := m.PruneCronLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "deleted 1 job records", msg)

	var left []model.CronJobLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "recent", left[0].JobName)
}

func TestRegisterJobs(t *testing.T) {
	db := dbtest.Open(t)
	m := NewCronManager(db, services.NewNewsService(db))
	require.NoError(t, m.registerJobs())
	assert.Len(t, m.cron.Entries(), 3)
}
