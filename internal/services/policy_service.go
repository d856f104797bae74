package services

import (
	"sync"

	"likebot-api/internal/logger"
	"likebot-api/internal/models"
	"likebot-api/internal/repository"

	"github.com/sirupsen/logrus"
)

// PolicyService owns the process-wide policy record: which channels may
// carry commands, who is an admin, who bypasses quotas, and per-user
// daily limit overrides. The record is loaded once at startup; every
// mutation persists synchronously. A failed persist keeps the in-memory
// change (memory stays authoritative for the process lifetime) and the
// error is returned so the caller can log it.
type PolicyService interface {
	IsChannelAllowed(channelID string) bool
	IsAdmin(userID string) bool
	IsUnlimited(userID string) bool
	DailyLimitFor(userID string) int

	SetDailyLimitFor(userID string, limit int) error
	AddAllowedChannel(channelID string) error
	RemoveAllowedChannel(channelID string) error
	AddUnlimitedUser(userID string) error
	RemoveUnlimitedUser(userID string) error

	AllowedChannels() []string
	LoadedFromStore() bool
}

type policyService struct {
	mu           sync.RWMutex
	cfg          *models.PolicyConfig
	repo         repository.PolicyRepository
	defaultLimit int
	loaded       bool
}

func NewPolicyService(repo repository.PolicyRepository, defaultLimit int) PolicyService {
	s := &policyService{
		repo:         repo,
		defaultLimit: defaultLimit,
	}

	cfg, err := repo.Load()
	switch {
	case err != nil:
		logger.Logger.WithFields(logrus.Fields{"error": err}).Warn("Failed to load policy config, using defaults")
		s.cfg = models.DefaultPolicyConfig()
	case cfg == nil:
		s.cfg = models.DefaultPolicyConfig()
		s.loaded = true
	default:
		s.cfg = cfg
		s.loaded = true
	}
	return s
}

// IsChannelAllowed is true when no channel restriction is configured at
// all, or when the channel is in the allowed set.
func (s *policyService) IsChannelAllowed(channelID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cfg.AllowedChannels) == 0 || s.cfg.AllowedChannels.Contains(channelID)
}

func (s *policyService) IsAdmin(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.AdminUsers.Contains(userID)
}

func (s *policyService) IsUnlimited(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.UnlimitedUsers.Contains(userID)
}

func (s *policyService) DailyLimitFor(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit, ok := s.cfg.DailyLimits[userID]; ok {
		return limit
	}
	return s.defaultLimit
}

func (s *policyService) SetDailyLimitFor(userID string, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.DailyLimits == nil {
		s.cfg.DailyLimits = models.LimitMap{}
	}
	s.cfg.DailyLimits[userID] = limit
	return s.persistLocked()
}

func (s *policyService) AddAllowedChannel(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.AllowedChannels.Contains(channelID) {
		return nil
	}
	s.cfg.AllowedChannels = append(s.cfg.AllowedChannels, channelID)
	return s.persistLocked()
}

// RemoveAllowedChannel is a no-op when the channel was never allowed.
func (s *policyService) RemoveAllowedChannel(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.AllowedChannels.Contains(channelID) {
		return nil
	}

	kept := make(models.StringSlice, 0, len(s.cfg.AllowedChannels)-1)
	for _, id := range s.cfg.AllowedChannels {
		if id != channelID {
			kept = append(kept, id)
		}
	}
	s.cfg.AllowedChannels = kept
	return s.persistLocked()
}

func (s *policyService) AddUnlimitedUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.UnlimitedUsers.Contains(userID) {
		return nil
	}
	s.cfg.UnlimitedUsers = append(s.cfg.UnlimitedUsers, userID)
	return s.persistLocked()
}

func (s *policyService) RemoveUnlimitedUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.UnlimitedUsers.Contains(userID) {
		return nil
	}

	kept := make(models.StringSlice, 0, len(s.cfg.UnlimitedUsers)-1)
	for _, id := range s.cfg.UnlimitedUsers {
		if id != userID {
			kept = append(kept, id)
		}
	}
	s.cfg.UnlimitedUsers = kept
	return s.persistLocked()
}

func (s *policyService) AllowedChannels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.cfg.AllowedChannels))
	copy(out, s.cfg.AllowedChannels)
	return out
}

// LoadedFromStore reports whether the startup load succeeded. False means
// the process is running on defaults because the persisted copy was
// unreadable.
func (s *policyService) LoadedFromStore() bool {
	return s.loaded
}

func (s *policyService) persistLocked() error {
	if err := s.repo.Save(s.cfg); err != nil {
		logger.Logger.WithFields(logrus.Fields{"error": err}).Error("Failed to persist policy config")
		return err
	}
	return nil
}
