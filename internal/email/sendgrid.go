package email

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rfphub/internal/model"
)

// Subject prefixes used on outbound RFP mail. The reconciler strips the same
// prefixes off inbound replies to recover the RFP title.
const (
	SubjectPrefix      = "RFP: "
	ReplySubjectPrefix = "Re: RFP: "
)

// Correlation custom-arg keys attached to every outbound message.
const (
	CustomArgRFPID    = "rfp_id"
	CustomArgVendorID = "vendor_id"
)

type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// SendResult is the delivery outcome for a single vendor. A failed recipient
// never fails the batch.
type SendResult struct {
	VendorID   uint
	Recipient  string
	StatusCode int
	Err        error
}

type SendGridGateway struct {
	cfg Config
}

func NewSendGridGateway(cfg Config) *SendGridGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SendGridGateway{cfg: cfg}
}

// SendRFP dispatches one message per vendor, tagging each with rfp_id and
// vendor_id custom args so replies can be correlated later.
func (g *SendGridGateway) SendRFP(ctx context.Context, rfp *model.RFP, vendors []model.Vendor) []SendResult {
	subject := SubjectPrefix + rfp.Title
	body := buildRFPBody(rfp)
	client := sendgrid.NewSendClient(g.cfg.APIKey)

	results := make([]SendResult, 0, len(vendors))
	for _, vendor := range vendors {
		result := SendResult{VendorID: vendor.ID, Recipient: vendor.Email}

		message := mail.NewV3Mail()
		message.SetFrom(mail.NewEmail(g.cfg.FromName, g.cfg.FromEmail))
		message.Subject = subject
		message.AddContent(mail.NewContent("text/plain", body))

		personalization := mail.NewPersonalization()
		personalization.AddTos(mail.NewEmail(vendor.Name, vendor.Email))
		personalization.SetCustomArg(CustomArgRFPID, strconv.FormatUint(uint64(rfp.ID), 10))
		personalization.SetCustomArg(CustomArgVendorID, strconv.FormatUint(uint64(vendor.ID), 10))
		message.AddPersonalizations(personalization)

		sendCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		resp, err := client.SendWithContext(sendCtx, message)
		cancel()

		if err != nil {
			result.Err = fmt.Errorf("sendgrid send failed: %w", err)
		} else {
			result.StatusCode = resp.StatusCode
			if resp.StatusCode >= 300 {
				result.Err = fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
			}
		}
		results = append(results, result)
	}
	return results
}

func buildRFPBody(rfp *model.RFP) string {
	structured := rfp.Structured

	var b strings.Builder
	b.WriteString("Dear Vendor,\n\n")
	b.WriteString("Please review the following Request for Proposal (RFP) and submit your proposal.\n\n")
	b.WriteString("RFP DETAILS\n\n")
	fmt.Fprintf(&b, "Title: %s\n\n", rfp.Title)
	fmt.Fprintf(&b, "Description:\n%s\n\n", rfp.RawText)
	b.WriteString("--- Structured Requirements ---\n\n")

	b.WriteString("Requirements:\n")
	if reqs, ok := structured["requirements"].([]interface{}); ok {
		for _, req := range reqs {
			fmt.Fprintf(&b, "- %v\n", req)
		}
	}
	b.WriteString("\n")

	budgetMin, budgetMax := "N/A", "N/A"
	if budget, ok := structured["budget_range"].(map[string]interface{}); ok {
		if min, ok := budget["min"]; ok && min != nil {
			budgetMin = fmt.Sprintf("%v", min)
		}
		if max, ok := budget["max"]; ok && max != nil {
			budgetMax = fmt.Sprintf("%v", max)
		}
	}
	fmt.Fprintf(&b, "Budget Range: $%s - $%s\n", budgetMin, budgetMax)
	fmt.Fprintf(&b, "Timeline: %s\n", stringOrDefault(structured["timeline"], "Not specified"))
	fmt.Fprintf(&b, "Delivery Location: %s\n\n", stringOrDefault(structured["delivery_location"], "Not specified"))

	b.WriteString("HOW TO RESPOND\n\n")
	b.WriteString("Please reply to this email with your proposal including:\n")
	b.WriteString("- Total price\n")
	b.WriteString("- Delivery timeline (in days)\n")
	b.WriteString("- Warranty information (in years)\n")
	b.WriteString("- Payment terms\n")
	b.WriteString("- Any additional notes\n\n")
	b.WriteString("Best regards,\nRFP Management Team\n")
	return b.String()
}

func stringOrDefault(value interface{}, fallback string) string {
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return fallback
}
