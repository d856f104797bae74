package services

import (
	"sync"
	"time"

	"likebot-api/internal/logger"
	"likebot-api/internal/models"
	"likebot-api/internal/repository"

	"github.com/sirupsen/logrus"
)

// UserStats is one user's usage snapshot.
type UserStats struct {
	DailyUsed   int    `json:"daily_used"`
	TotalUsed   int    `json:"total_used"`
	FirstUsed   string `json:"first_used"`
	LastUsed    string `json:"last_used"`
	CurrentDate string `json:"current_date"`
}

// AggregateStats summarizes the whole usage store.
type AggregateStats struct {
	TotalUsers    int `json:"total_users"`
	ActiveToday   int `json:"active_today"`
	TotalRequests int `json:"total_requests"`
}

// UsageService owns the per-user usage records. Daily counters reset
// lazily: the first access after the stored date stops matching today
// zeroes the counter, no matter how many days have passed. "Today" is the
// process-local calendar date.
type UsageService interface {
	DailyUsage(userID string) (count int, date string)
	Remaining(userID string, limit int) int
	UnderLimit(userID string, limit int) bool
	RecordSuccess(userID string) error
	ResetDaily(userID string) error
	UserStats(userID string) UserStats
	AggregateStats() AggregateStats
}

type usageService struct {
	mu      sync.Mutex
	records map[string]*models.UserUsage
	repo    repository.UsageRepository
	now     func() time.Time
}

func NewUsageService(repo repository.UsageRepository) UsageService {
	s := &usageService{
		repo: repo,
		now:  time.Now,
	}

	records, err := repo.LoadAll()
	if err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err}).Warn("Failed to load usage records, starting empty")
		records = make(map[string]*models.UserUsage)
	}
	s.records = records
	return s
}

func (s *usageService) today() string {
	return s.now().Format(models.DateLayout)
}

func (s *usageService) DailyUsage(userID string) (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreateLocked(userID)
	s.rolloverLocked(rec)
	return rec.DailyCount, rec.DailyDate
}

func (s *usageService) Remaining(userID string, limit int) int {
	count, _ := s.DailyUsage(userID)
	if remaining := limit - count; remaining > 0 {
		return remaining
	}
	return 0
}

func (s *usageService) UnderLimit(userID string, limit int) bool {
	count, _ := s.DailyUsage(userID)
	return count < limit
}

// RecordSuccess must be called exactly once per confirmed external
// action: it rolls the day over if needed, then bumps both counters.
func (s *usageService) RecordSuccess(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreateLocked(userID)
	s.rolloverLocked(rec)

	rec.DailyCount++
	rec.TotalCount++
	rec.LastUsed = s.today()
	return s.persistLocked(rec)
}

// ResetDaily zeroes the daily counter for today regardless of prior
// state. Admin override path.
func (s *usageService) ResetDaily(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreateLocked(userID)
	rec.DailyDate = s.today()
	rec.DailyCount = 0
	return s.persistLocked(rec)
}

func (s *usageService) UserStats(userID string) UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreateLocked(userID)
	s.rolloverLocked(rec)
	return UserStats{
		DailyUsed:   rec.DailyCount,
		TotalUsed:   rec.TotalCount,
		FirstUsed:   rec.FirstUsed,
		LastUsed:    rec.LastUsed,
		CurrentDate: rec.DailyDate,
	}
}

// AggregateStats counts a user as active today only when their stored
// date matches today; stale records with a nonzero count have simply not
// rolled over yet and do not count.
func (s *usageService) AggregateStats() AggregateStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := AggregateStats{TotalUsers: len(s.records)}
	today := s.today()
	for _, rec := range s.records {
		stats.TotalRequests += rec.TotalCount
		if rec.DailyDate == today && rec.DailyCount > 0 {
			stats.ActiveToday++
		}
	}
	return stats
}

func (s *usageService) getOrCreateLocked(userID string) *models.UserUsage {
	if rec, ok := s.records[userID]; ok {
		return rec
	}

	rec := models.NewUserUsage(userID, s.today())
	s.records[userID] = rec
	// Persist failure is logged inside; the record lives on in memory.
	_ = s.persistLocked(rec)
	return rec
}

func (s *usageService) rolloverLocked(rec *models.UserUsage) {
	today := s.today()
	if rec.DailyDate == today {
		return
	}
	rec.DailyDate = today
	rec.DailyCount = 0
	_ = s.persistLocked(rec)
}

func (s *usageService) persistLocked(rec *models.UserUsage) error {
	if err := s.repo.Save(rec); err != nil {
		logger.Logger.WithFields(logrus.Fields{
			"error": err,
			"user":  rec.UserID,
		}).Error("Failed to persist usage record")
		return err
	}
	return nil
}
