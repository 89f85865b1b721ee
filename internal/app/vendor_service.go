package app

import (
	"errors"
	"fmt"
	"strings"

	"rfphub/internal/model"
	"rfphub/internal/repository"
)

type VendorService struct {
	vendors   VendorStore
	responses ResponseStore
}

type CreateVendorInput struct {
	Name   string
	Email  string
	Rating *float64
}

type UpdateVendorInput struct {
	Name   *string
	Email  *string
	Rating *float64
}

func NewVendorService(vendors VendorStore, responses ResponseStore) *VendorService {
	return &VendorService{vendors: vendors, responses: responses}
}

func (s *VendorService) Create(input CreateVendorInput) (*model.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	address := strings.TrimSpace(input.Email)
	if name == "" || address == "" {
		return nil, fmt.Errorf("%w: vendor name and email are required", ErrValidation)
	}

	vendor := &model.Vendor{
		Name:   name,
		Email:  address,
		Rating: input.Rating,
	}
	if err := s.vendors.Create(vendor); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: vendor with email %s already exists", ErrDuplicate, address)
		}
		return nil, err
	}
	return vendor, nil
}

func (s *VendorService) List() ([]model.Vendor, error) {
	return s.vendors.List()
}

func (s *VendorService) Get(id uint) (*model.Vendor, error) {
	vendor, err := s.vendors.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, fmt.Errorf("%w: vendor %d", ErrNotFound, id)
	}
	return vendor, nil
}

func (s *VendorService) Update(id uint, input UpdateVendorInput) (*model.Vendor, error) {
	vendor, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: vendor name must not be empty", ErrValidation)
		}
		vendor.Name = name
	}
	if input.Email != nil {
		address := strings.TrimSpace(*input.Email)
		if address == "" {
			return nil, fmt.Errorf("%w: vendor email must not be empty", ErrValidation)
		}
		vendor.Email = address
	}
	if input.Rating != nil {
		vendor.Rating = input.Rating
	}

	if err := s.vendors.Update(vendor); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: vendor with email %s already exists", ErrDuplicate, vendor.Email)
		}
		return nil, err
	}
	return vendor, nil
}

// Delete removes a vendor unless response rows still reference it.
func (s *VendorService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	count, err := s.responses.CountByVendor(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: vendor %d has associated RFP responses", ErrConflict, id)
	}
	return s.vendors.Delete(id)
}
