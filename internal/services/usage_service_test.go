package services

import (
	"errors"
	"testing"
	"time"

	"likebot-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUsageRepo is an in-memory UsageRepository with an injectable save
// failure.
type fakeUsageRepo struct {
	records map[string]*models.UserUsage
	loadErr error
	saveErr error
	saves   int
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{records: make(map[string]*models.UserUsage)}
}

func (f *fakeUsageRepo) LoadAll() (map[string]*models.UserUsage, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make(map[string]*models.UserUsage, len(f.records))
	for id, rec := range f.records {
		copied := *rec
		out[id] = &copied
	}
	return out, nil
}

func (f *fakeUsageRepo) Save(record *models.UserUsage) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *record
	f.records[record.UserID] = &copied
	return nil
}

func newTestUsageService(t *testing.T, repo *fakeUsageRepo, day string) *usageService {
	t.Helper()
	s := NewUsageService(repo).(*usageService)
	setDay(t, s, day)
	return s
}

func setDay(t *testing.T, s *usageService, day string) {
	t.Helper()
	parsed, err := time.ParseInLocation(models.DateLayout, day, time.Local)
	require.NoError(t, err)
	s.now = func() time.Time { return parsed }
}

func TestUsageService_LazyCreation(t *testing.T) {
	repo := newFakeUsageRepo()
	s := newTestUsageService(t, repo, "2026-08-29")

	count, date := s.DailyUsage("u1")
	assert.Equal(t, 0, count)
	assert.Equal(t, "2026-08-29", date)

	// The zeroed record was persisted on first sight.
	require.Contains(t, repo.records, "u1")
	assert.Equal(t, "2026-08-29", repo.records["u1"].FirstUsed)
}

func TestUsageService_RecordSuccessMonotonic(t *testing.T) {
	repo := newFakeUsageRepo()
	s := newTestUsageService(t, repo, "2026-08-29")

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.RecordSuccess("u1"))
		count, _ := s.DailyUsage("u1")
		assert.Equal(t, i, count)
	}

	assert.Equal(t, 2, s.Remaining("u1", 5))
	assert.True(t, s.UnderLimit("u1", 5))
	assert.False(t, s.UnderLimit("u1", 3))

	stats := s.UserStats("u1")
	assert.Equal(t, 3, stats.DailyUsed)
	assert.Equal(t, 3, stats.TotalUsed)
}

func TestUsageService_DailyRollover(t *testing.T) {
	repo := newFakeUsageRepo()
	s := newTestUsageService(t, repo, "2026-08-29")

	for i := 0; i < 4; i++ {
		require.NoError(t, s.RecordSuccess("u1"))
	}

	// Several days later: exactly one reset, count back to zero, stored
	// date moves to the new day. The lifetime total survives.
	setDay(t, s, "2026-09-02")
	count, date := s.DailyUsage("u1")
	assert.Equal(t, 0, count)
	assert.Equal(t, "2026-09-02", date)
	assert.Equal(t, 4, s.UserStats("u1").TotalUsed)
	assert.Equal(t, "2026-09-02", repo.records["u1"].DailyDate)
}

func TestUsageService_ResetDaily(t *testing.T) {
	repo := newFakeUsageRepo()
	s := newTestUsageService(t, repo, "2026-08-29")

	require.NoError(t, s.RecordSuccess("u1"))
	require.NoError(t, s.RecordSuccess("u1"))
	require.NoError(t, s.ResetDaily("u1"))

	count, _ := s.DailyUsage("u1")
	assert.Equal(t, 0, count)
	assert.Equal(t, 2, s.UserStats("u1").TotalUsed)
}

func TestUsageService_AggregateStats(t *testing.T) {
	repo := newFakeUsageRepo()
	s := newTestUsageService(t, repo, "2026-08-29")

	require.NoError(t, s.RecordSuccess("active"))
	require.NoError(t, s.RecordSuccess("active"))

	// A user whose last activity was days ago and has not been touched
	// since: stale date, must not count as active today.
	s.records["stale"] = &models.UserUsage{
		UserID:     "stale",
		DailyDate:  "2026-08-20",
		DailyCount: 5,
		TotalCount: 9,
	}

	// Created today but never confirmed anything.
	_, _ = s.DailyUsage("idle")

	stats := s.AggregateStats()
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveToday)
	assert.Equal(t, 11, stats.TotalRequests)
}

func TestUsageService_LoadFailureStartsEmpty(t *testing.T) {
	repo := newFakeUsageRepo()
	repo.loadErr = errors.New("disk on fire")

	s := NewUsageService(repo).(*usageService)
	setDay(t, s, "2026-08-29")

	count, _ := s.DailyUsage("u1")
	assert.Equal(t, 0, count)
}

func TestUsageService_SaveFailureKeepsMemoryState(t *testing.T) {
	repo := newFakeUsageRepo()
	s := newTestUsageService(t, repo, "2026-08-29")

	repo.saveErr = errors.New("disk full")
	err := s.RecordSuccess("u1")
	require.Error(t, err)

	// Memory still governs the rest of the process.
	count, _ := s.DailyUsage("u1")
	assert.Equal(t, 1, count)
}
