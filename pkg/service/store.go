package service

import (
	"context"
	"time"

	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/repository"
)

// Store provides unified access to repositories for scrapers and the notification dispatcher
type Store struct {
	contentRepo   *repository.ContentRepository
	indicatorRepo *repository.IndicatorRepository
	memberRepo    *repository.MemberRepository
	settingRepo   *repository.SettingRepository
}

// NewStore creates a new store over the given repositories
func NewStore(repos *repository.Repositories) *Store {
	return &Store{
		contentRepo:   repos.Content,
		indicatorRepo: repos.Indicator,
		memberRepo:    repos.Member,
		settingRepo:   repos.Setting,
	}
}

// Content methods

func (s *Store) FindByTitle(ctx context.Context, c domain.Collection, title string) (*domain.ContentRecord, error) {
	return s.contentRepo.FindByTitle(ctx, c, title)
}

func (s *Store) Create(ctx context.Context, c domain.Collection, rec *domain.ContentRecord) error {
	return s.contentRepo.Create(ctx, c, rec)
}

func (s *Store) FindUpcoming(ctx context.Context, c domain.Collection, from, to time.Time) ([]domain.ContentRecord, error) {
	return s.contentRepo.FindUpcoming(ctx, c, from, to)
}

func (s *Store) CountRecords(ctx context.Context, c domain.Collection) (int, error) {
	return s.contentRepo.Count(ctx, c)
}

func (s *Store) ListRecords(ctx context.Context, c domain.Collection, limit int) ([]domain.ContentRecord, error) {
	return s.contentRepo.List(ctx, c, limit)
}

// Indicator methods

func (s *Store) UpsertIndicator(ctx context.Context, ind *domain.EconomicIndicator) (bool, error) {
	return s.indicatorRepo.Upsert(ctx, ind)
}

func (s *Store) GetIndicator(ctx context.Context, category string, year, month int) (*domain.EconomicIndicator, error) {
	return s.indicatorRepo.Get(ctx, category, year, month)
}

// Member methods

func (s *Store) ListActiveRecipients(ctx context.Context) ([]domain.Recipient, error) {
	return s.memberRepo.ListActiveRecipients(ctx)
}

func (s *Store) CreateRecipient(ctx context.Context, rcp *domain.Recipient) error {
	return s.memberRepo.CreateRecipient(ctx, rcp)
}

// Setting methods

func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	return s.settingRepo.GetSetting(ctx, key)
}

func (s *Store) GetSettings(ctx context.Context, keys ...string) (map[string]string, error) {
	return s.settingRepo.GetSettings(ctx, keys...)
}

func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	return s.settingRepo.SetSetting(ctx, key, value)
}
