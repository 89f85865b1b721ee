package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rfphub/internal/model"
)

type ResponseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) Create(resp *model.VendorResponse) error {
	if err := r.db.Create(resp).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("create response: %w", ErrDuplicateKey)
		}
		return fmt.Errorf("create response failed: %w", err)
	}
	return nil
}

func (r *ResponseRepository) Update(resp *model.VendorResponse) error {
	if err := r.db.Save(resp).Error; err != nil {
		return fmt.Errorf("update response failed: %w", err)
	}
	return nil
}

func (r *ResponseRepository) GetByRFPAndVendor(rfpID, vendorID uint) (*model.VendorResponse, error) {
	var resp model.VendorResponse
	err := r.db.Where("fk_rfp_id = ? AND fk_vendor_id = ?", rfpID, vendorID).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query response by rfp and vendor failed: %w", err)
	}
	return &resp, nil
}

func (r *ResponseRepository) ListByRFP(rfpID uint) ([]model.VendorResponse, error) {
	var responses []model.VendorResponse
	if err := r.db.Where("fk_rfp_id = ?", rfpID).Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("list responses failed: %w", err)
	}
	return responses, nil
}

// ListByRFPWithVendor joins each response with the vendor's display name.
func (r *ResponseRepository) ListByRFPWithVendor(rfpID uint) ([]model.VendorResponseView, error) {
	var views []model.VendorResponseView
	err := r.db.Model(&model.VendorResponse{}).
		Select("vendor_rfp_response.*, vendor_info.vendor_name").
		Joins("LEFT JOIN vendor_info ON vendor_info.vendor_id = vendor_rfp_response.fk_vendor_id").
		Where("vendor_rfp_response.fk_rfp_id = ?", rfpID).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("list responses with vendor failed: %w", err)
	}
	return views, nil
}

func (r *ResponseRepository) CountByVendor(vendorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.VendorResponse{}).Where("fk_vendor_id = ?", vendorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count responses by vendor failed: %w", err)
	}
	return count, nil
}
