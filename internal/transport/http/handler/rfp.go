package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rfphub/internal/app"
	"rfphub/internal/transport/http/response"
)

type RFPHandler struct {
	rfpService *app.RFPService
}

type CreateRFPRequest struct {
	Title   string `json:"rfp_title" binding:"required,max=500"`
	RawText string `json:"rfp_raw_text" binding:"required"`
}

type UpdateRFPRequest struct {
	Title   *string `json:"rfp_title"`
	RawText *string `json:"rfp_raw_text"`
	Status  *string `json:"rfp_status"`
}

type SendRFPRequest struct {
	VendorIDs []uint `json:"vendor_ids" binding:"required"`
}

func NewRFPHandler(rfpService *app.RFPService) *RFPHandler {
	return &RFPHandler{rfpService: rfpService}
}

func (h *RFPHandler) Create(c *gin.Context) {
	var req CreateRFPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	rfp, err := h.rfpService.Create(c.Request.Context(), req.Title, req.RawText)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "RFP created successfully", rfp)
}

func (h *RFPHandler) List(c *gin.Context) {
	rfps, err := h.rfpService.List()
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "RFPs retrieved successfully", rfps)
}

func (h *RFPHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	rfp, err := h.rfpService.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "RFP retrieved successfully", rfp)
}

func (h *RFPHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateRFPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	rfp, err := h.rfpService.Update(id, app.UpdateRFPInput{
		Title:   req.Title,
		RawText: req.RawText,
		Status:  req.Status,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "RFP updated successfully", rfp)
}

func (h *RFPHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.rfpService.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RFPHandler) Send(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req SendRFPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.rfpService.SendToVendors(c.Request.Context(), id, req.VendorIDs); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "RFP sent to vendors successfully", nil)
}

func (h *RFPHandler) Evaluate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.rfpService.Evaluate(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "RFP evaluation completed", result)
}

func (h *RFPHandler) ListResponses(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	views, err := h.rfpService.ListResponses(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "RFP responses retrieved successfully", views)
}
