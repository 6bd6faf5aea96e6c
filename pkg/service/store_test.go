package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/repository"
)

func TestStore(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	s := NewStore(repos)

	rec := &domain.ContentRecord{Title: "Report 2025", Slug: "report-2025-abcd1234", StartDate: time.Now(), IsActive: true}
	require.NoError(t, s.Create(ctx, domain.CollectionReport, rec))
	err = s.Create(ctx, domain.CollectionReport, &domain.ContentRecord{Title: "Report 2025", Slug: "other", StartDate: time.Now()})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := s.FindByTitle(ctx, domain.CollectionReport, "Report 2025")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)

	n, err := s.CountRecords(ctx, domain.CollectionReport)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recs, err := s.ListRecords(ctx, domain.CollectionReport, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	created, err := s.UpsertIndicator(ctx, &domain.EconomicIndicator{Category: "EUR", Title: "Euro", Slug: "eur", Year: 2025, Month: 1, Value: 37, IsActive: true})
	require.NoError(t, err)
	assert.True(t, created)
	ind, err := s.GetIndicator(ctx, "EUR", 2025, 1)
	require.NoError(t, err)
	require.NotNil(t, ind)
	assert.Equal(t, "Euro", ind.Title)

	require.NoError(t, s.CreateRecipient(ctx, &domain.Recipient{Email: "a@x.com", IsActive: true}))
	rcps, err := s.ListActiveRecipients(ctx)
	require.NoError(t, err)
	assert.Len(t, rcps, 1)

	require.NoError(t, s.SetSetting(ctx, domain.SettingSiteName, "Textile Association"))
	v, err := s.GetSetting(ctx, domain.SettingSiteName)
	require.NoError(t, err)
	assert.Equal(t, "Textile Association", v)
	m, err := s.GetSettings(ctx, domain.SettingSiteName, domain.SettingSMTPHost)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{domain.SettingSiteName: "Textile Association"}, m)
}
