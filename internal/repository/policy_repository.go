package repository

import (
	"likebot-api/internal/models"
	apperrors "likebot-api/internal/pkg/errors"

	"gorm.io/gorm"
)

// PolicyRepository persists the single process-wide policy record.
// Load returns (nil, nil) when nothing has been persisted yet.
type PolicyRepository interface {
	Load() (*models.PolicyConfig, error)
	Save(cfg *models.PolicyConfig) error
}

type policyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) Load() (*models.PolicyConfig, error) {
	var cfg models.PolicyConfig
	err := r.db.First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Persistence(apperrors.KindLoad, "policy config", err)
	}
	return &cfg, nil
}

func (r *policyRepository) Save(cfg *models.PolicyConfig) error {
	cfg.ID = 1
	if err := r.db.Save(cfg).Error; err != nil {
		return apperrors.Persistence(apperrors.KindSave, "policy config", err)
	}
	return nil
}
