package repository

import (
	"likebot-api/internal/models"
	apperrors "likebot-api/internal/pkg/errors"

	"gorm.io/gorm"
)

// UsageRepository persists per-user usage records. LoadAll is called once
// at startup; Save upserts a single record after each mutation.
type UsageRepository interface {
	LoadAll() (map[string]*models.UserUsage, error)
	Save(record *models.UserUsage) error
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) LoadAll() (map[string]*models.UserUsage, error) {
	var rows []models.UserUsage
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, apperrors.Persistence(apperrors.KindLoad, "user usage", err)
	}

	records := make(map[string]*models.UserUsage, len(rows))
	for i := range rows {
		records[rows[i].UserID] = &rows[i]
	}
	return records, nil
}

func (r *usageRepository) Save(record *models.UserUsage) error {
	if err := r.db.Save(record).Error; err != nil {
		return apperrors.Persistence(apperrors.KindSave, "user usage", err)
	}
	return nil
}
