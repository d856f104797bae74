package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	"likebot-api/internal/models"
	apperrors "likebot-api/internal/pkg/errors"
)

// File-backed variants of the repositories. State lives in two JSON
// documents under a data directory, written with write-temp-then-rename
// so a crash mid-write never leaves a half-written store behind.

const (
	policyFileName = "config.json"
	usageFileName  = "users.json"
)

type filePolicyRepository struct {
	path string
}

func NewFilePolicyRepository(dataDir string) PolicyRepository {
	return &filePolicyRepository{path: filepath.Join(dataDir, policyFileName)}
}

func (r *filePolicyRepository) Load() (*models.PolicyConfig, error) {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Persistence(apperrors.KindLoad, "policy config", err)
	}

	var cfg models.PolicyConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, apperrors.Persistence(apperrors.KindLoad, "policy config", err)
	}
	return &cfg, nil
}

func (r *filePolicyRepository) Save(cfg *models.PolicyConfig) error {
	if err := writeJSONAtomic(r.path, cfg); err != nil {
		return apperrors.Persistence(apperrors.KindSave, "policy config", err)
	}
	return nil
}

type fileUsageRepository struct {
	path string
	// records mirrors the last known full store so a single-record Save
	// can rewrite the whole document. Access is serialized by the owning
	// service (single writer).
	records map[string]*models.UserUsage
}

func NewFileUsageRepository(dataDir string) UsageRepository {
	return &fileUsageRepository{
		path:    filepath.Join(dataDir, usageFileName),
		records: make(map[string]*models.UserUsage),
	}
}

func (r *fileUsageRepository) LoadAll() (map[string]*models.UserUsage, error) {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return make(map[string]*models.UserUsage), nil
	}
	if err != nil {
		return nil, apperrors.Persistence(apperrors.KindLoad, "user usage", err)
	}

	stored := make(map[string]*models.UserUsage)
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, apperrors.Persistence(apperrors.KindLoad, "user usage", err)
	}

	r.records = make(map[string]*models.UserUsage, len(stored))
	out := make(map[string]*models.UserUsage, len(stored))
	for id, rec := range stored {
		rec.UserID = id
		copied := *rec
		r.records[id] = &copied
		out[id] = rec
	}
	return out, nil
}

func (r *fileUsageRepository) Save(record *models.UserUsage) error {
	copied := *record
	r.records[record.UserID] = &copied

	if err := writeJSONAtomic(r.path, r.records); err != nil {
		return apperrors.Persistence(apperrors.KindSave, "user usage", err)
	}
	return nil
}

func writeJSONAtomic(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
