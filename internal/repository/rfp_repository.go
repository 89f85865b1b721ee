package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rfphub/internal/model"
)

type RFPRepository struct {
	db *gorm.DB
}

func NewRFPRepository(db *gorm.DB) *RFPRepository {
	return &RFPRepository{db: db}
}

func (r *RFPRepository) Create(rfp *model.RFP) error {
	if err := r.db.Create(rfp).Error; err != nil {
		return fmt.Errorf("create rfp failed: %w", err)
	}
	return nil
}

func (r *RFPRepository) List() ([]model.RFP, error) {
	var rfps []model.RFP
	if err := r.db.Order("rfp_created_at DESC").Find(&rfps).Error; err != nil {
		return nil, fmt.Errorf("list rfps failed: %w", err)
	}
	return rfps, nil
}

func (r *RFPRepository) GetByID(id uint) (*model.RFP, error) {
	var rfp model.RFP
	if err := r.db.First(&rfp, "rfp_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query rfp by id failed: %w", err)
	}
	return &rfp, nil
}

func (r *RFPRepository) GetByTitle(title string) (*model.RFP, error) {
	var rfp model.RFP
	if err := r.db.Where("rfp_title = ?", title).First(&rfp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query rfp by title failed: %w", err)
	}
	return &rfp, nil
}

func (r *RFPRepository) Update(rfp *model.RFP) error {
	if err := r.db.Save(rfp).Error; err != nil {
		return fmt.Errorf("update rfp failed: %w", err)
	}
	return nil
}

// DeleteWithResponses removes the RFP and every response row that references it
// inside one transaction.
func (r *RFPRepository) DeleteWithResponses(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.VendorResponse{}, "fk_rfp_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.RFP{}, "rfp_id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("delete rfp failed: %w", err)
	}
	return nil
}
