package repository

import (
	"fmt"

	"gorm.io/gorm"

	"rfphub/internal/model"
)

type EmailEventRepository struct {
	db *gorm.DB
}

func NewEmailEventRepository(db *gorm.DB) *EmailEventRepository {
	return &EmailEventRepository{db: db}
}

func (r *EmailEventRepository) Create(event *model.EmailEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create email event failed: %w", err)
	}
	return nil
}

func (r *EmailEventRepository) ListByRFP(rfpID uint) ([]model.EmailEvent, error) {
	var events []model.EmailEvent
	if err := r.db.Where("rfp_id = ?", rfpID).Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list email events failed: %w", err)
	}
	return events, nil
}
