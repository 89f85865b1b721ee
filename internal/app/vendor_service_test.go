package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfphub/internal/model"
)

func newVendorService() (*VendorService, *fakeVendorStore, *fakeResponseStore) {
	vendors := newFakeVendorStore()
	responses := newFakeResponseStore()
	responses.vendors = vendors
	return NewVendorService(vendors, responses), vendors, responses
}

func TestCreateVendorRequiresNameAndEmail(t *testing.T) {
	service, vendors, _ := newVendorService()

	_, err := service.Create(CreateVendorInput{Name: "  ", Email: "sales@acme.example"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Create(CreateVendorInput{Name: "Acme", Email: ""})
	assert.ErrorIs(t, err, ErrValidation)

	all, _ := vendors.List()
	assert.Empty(t, all)
}

func TestCreateVendorDuplicateEmail(t *testing.T) {
	service, vendors, _ := newVendorService()

	first, err := service.Create(CreateVendorInput{Name: "Acme", Email: "sales@acme.example"})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = service.Create(CreateVendorInput{Name: "Acme Again", Email: "sales@acme.example"})
	assert.ErrorIs(t, err, ErrDuplicate)

	all, _ := vendors.List()
	assert.Len(t, all, 1)
}

func TestGetVendorMissing(t *testing.T) {
	service, _, _ := newVendorService()

	_, err := service.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateVendorPartialFields(t *testing.T) {
	service, vendors, _ := newVendorService()
	rating := 4.5
	vendor := vendors.add(model.Vendor{Name: "Acme", Email: "sales@acme.example", Rating: &rating})

	newName := "Acme Industries"
	updated, err := service.Update(vendor.ID, UpdateVendorInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Acme Industries", updated.Name)
	assert.Equal(t, "sales@acme.example", updated.Email)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4.5, *updated.Rating)
}

func TestUpdateVendorDuplicateEmail(t *testing.T) {
	service, vendors, _ := newVendorService()
	vendors.add(model.Vendor{Name: "Acme", Email: "sales@acme.example"})
	other := vendors.add(model.Vendor{Name: "Globex", Email: "sales@globex.example"})

	taken := "sales@acme.example"
	_, err := service.Update(other.ID, UpdateVendorInput{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestDeleteVendorBlockedByResponses(t *testing.T) {
	service, vendors, responses := newVendorService()
	vendor := vendors.add(model.Vendor{Name: "Acme", Email: "sales@acme.example"})
	responses.add(model.VendorResponse{RFPID: 1, VendorID: vendor.ID})

	err := service.Delete(vendor.ID)
	assert.ErrorIs(t, err, ErrConflict)

	still, _ := vendors.GetByID(vendor.ID)
	assert.NotNil(t, still)
}

func TestDeleteVendorWithoutResponses(t *testing.T) {
	service, vendors, _ := newVendorService()
	vendor := vendors.add(model.Vendor{Name: "Acme", Email: "sales@acme.example"})

	require.NoError(t, service.Delete(vendor.ID))

	gone, _ := vendors.GetByID(vendor.ID)
	assert.Nil(t, gone)
}

func TestDeleteVendorMissing(t *testing.T) {
	service, _, _ := newVendorService()
	assert.ErrorIs(t, service.Delete(7), ErrNotFound)
}
