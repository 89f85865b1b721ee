package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rfphub/internal/app"
)

type WebhookHandler struct {
	inboundService *app.InboundService
}

// inboundPayload covers both shapes the SendGrid inbound-parse webhook posts:
// a JSON body or form-encoded fields. rfp_id and vendor_id are the correlation
// tags attached to outbound mail, echoed back as strings when present.
type inboundPayload struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Text     string `json:"text"`
	HTML     string `json:"html"`
	RFPID    string `json:"rfp_id"`
	VendorID string `json:"vendor_id"`
}

func NewWebhookHandler(inboundService *app.InboundService) *WebhookHandler {
	return &WebhookHandler{inboundService: inboundService}
}

// Inbound always answers 200: the mail relay cannot act on an HTTP error and
// a relay retry would process the same reply twice. Failures are reported in
// the body's status field.
func (h *WebhookHandler) Inbound(c *gin.Context) {
	var payload inboundPayload

	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusOK, app.InboundResult{Status: "error", Message: "invalid webhook payload"})
			return
		}
	} else {
		payload.From = c.PostForm("from")
		payload.To = c.PostForm("to")
		payload.Subject = c.PostForm("subject")
		payload.Text = c.PostForm("text")
		payload.HTML = c.PostForm("html")
		payload.RFPID = c.PostForm("rfp_id")
		payload.VendorID = c.PostForm("vendor_id")
	}

	result := h.inboundService.Process(c.Request.Context(), app.InboundEmail{
		From:     payload.From,
		To:       payload.To,
		Subject:  payload.Subject,
		Text:     payload.Text,
		HTML:     payload.HTML,
		RFPID:    parseCorrelationID(payload.RFPID),
		VendorID: parseCorrelationID(payload.VendorID),
	})
	c.JSON(http.StatusOK, result)
}

// parseCorrelationID tolerates absent or garbled tags; zero means unmatched.
func parseCorrelationID(raw string) uint {
	parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return uint(parsed)
}
