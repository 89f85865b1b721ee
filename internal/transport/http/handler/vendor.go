package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rfphub/internal/app"
	"rfphub/internal/transport/http/response"
)

type VendorHandler struct {
	vendorService *app.VendorService
}

type CreateVendorRequest struct {
	Name   string   `json:"vendor_name" binding:"required,max=255"`
	Email  string   `json:"vendor_email" binding:"required,email,max=255"`
	Rating *float64 `json:"vendor_rating"`
}

type UpdateVendorRequest struct {
	Name   *string  `json:"vendor_name"`
	Email  *string  `json:"vendor_email" binding:"omitempty,email,max=255"`
	Rating *float64 `json:"vendor_rating"`
}

func NewVendorHandler(vendorService *app.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	vendor, err := h.vendorService.Create(app.CreateVendorInput{
		Name:   req.Name,
		Email:  req.Email,
		Rating: req.Rating,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Vendor created successfully", vendor)
}

func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := h.vendorService.List()
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Vendors retrieved successfully", vendors)
}

func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	vendor, err := h.vendorService.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Vendor retrieved successfully", vendor)
}

func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	vendor, err := h.vendorService.Update(id, app.UpdateVendorInput{
		Name:   req.Name,
		Email:  req.Email,
		Rating: req.Rating,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Vendor updated successfully", vendor)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.vendorService.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// idParam parses the {id} path segment, answering 400 itself on garbage.
func idParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(parsed), true
}
