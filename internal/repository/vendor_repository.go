package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rfphub/internal/model"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) Create(vendor *model.Vendor) error {
	if err := r.db.Create(vendor).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("create vendor: %w", ErrDuplicateKey)
		}
		return fmt.Errorf("create vendor failed: %w", err)
	}
	return nil
}

func (r *VendorRepository) List() ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := r.db.Order("vendor_created_at DESC").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("list vendors failed: %w", err)
	}
	return vendors, nil
}

func (r *VendorRepository) GetByID(id uint) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.First(&vendor, "vendor_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query vendor by id failed: %w", err)
	}
	return &vendor, nil
}

func (r *VendorRepository) GetByEmail(email string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.Where("vendor_email = ?", email).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query vendor by email failed: %w", err)
	}
	return &vendor, nil
}

func (r *VendorRepository) ListByIDs(ids []uint) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := r.db.Where("vendor_id IN ?", ids).Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("list vendors by ids failed: %w", err)
	}
	return vendors, nil
}

func (r *VendorRepository) Update(vendor *model.Vendor) error {
	if err := r.db.Save(vendor).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("update vendor: %w", ErrDuplicateKey)
		}
		return fmt.Errorf("update vendor failed: %w", err)
	}
	return nil
}

func (r *VendorRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Vendor{}, "vendor_id = ?", id).Error; err != nil {
		return fmt.Errorf("delete vendor failed: %w", err)
	}
	return nil
}
