package app

import (
	"context"
	"log"
	"net/mail"
	"strings"
	"time"

	"rfphub/internal/ai"
	"rfphub/internal/email"
	"rfphub/internal/model"
)

// InboundEmail is the normalized shape of one inbound-parse webhook payload.
// RFPID and VendorID carry the correlation tags attached at send time when the
// relay echoes them; zero means absent.
type InboundEmail struct {
	From     string
	To       string
	Subject  string
	Text     string
	HTML     string
	RFPID    uint
	VendorID uint
}

// InboundResult is always returned, never an error: the mail relay cannot act
// on a transport failure and a retry would duplicate processing.
type InboundResult struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Data    *InboundResultData `json:"data,omitempty"`
}

type InboundResultData struct {
	ResponseID uint `json:"response_id"`
	RFPID      uint `json:"rfp_id"`
	VendorID   uint `json:"vendor_id"`
}

type InboundService struct {
	vendors   VendorStore
	rfps      RFPStore
	responses ResponseStore
	extractor ExtractionService
	events    EmailEventPublisher
	cache     ResponseCache
}

func NewInboundService(
	vendors VendorStore,
	rfps RFPStore,
	responses ResponseStore,
	extractor ExtractionService,
	events EmailEventPublisher,
	cache ResponseCache,
) *InboundService {
	return &InboundService{
		vendors:   vendors,
		rfps:      rfps,
		responses: responses,
		extractor: extractor,
		events:    events,
		cache:     cache,
	}
}

// Process reconciles one inbound vendor email: resolve the vendor, resolve the
// RFP, extract structured terms, and upsert the (RFP, vendor) response row.
// Correlation tags win when present and valid; sender address and subject
// title are the fallback.
func (s *InboundService) Process(ctx context.Context, inbound InboundEmail) InboundResult {
	body := inbound.Text
	if strings.TrimSpace(body) == "" {
		body = inbound.HTML
	}
	if strings.TrimSpace(body) == "" {
		return s.reject(ctx, inbound, "email body is empty")
	}

	sender := senderAddress(inbound.From)

	vendor, err := s.resolveVendor(inbound.VendorID, sender)
	if err != nil {
		log.Printf("webhook vendor lookup failed: %v", err)
		return s.reject(ctx, inbound, "failed to process vendor reply")
	}
	if vendor == nil {
		return s.reject(ctx, inbound, "Vendor email not recognized")
	}

	rfp, err := s.resolveRFP(inbound.RFPID, inbound.Subject)
	if err != nil {
		log.Printf("webhook rfp lookup failed: %v", err)
		return s.reject(ctx, inbound, "failed to process vendor reply")
	}
	if rfp == nil {
		return s.reject(ctx, inbound, "RFP not found")
	}

	terms, err := s.extractor.ParseVendorReply(ctx, body)
	if err != nil {
		log.Printf("webhook reply extraction failed: %v", err)
		return s.reject(ctx, inbound, "failed to parse vendor reply")
	}

	response, err := s.upsertResponse(rfp.ID, vendor.ID, body, terms.TotalPrice, terms.DeliveryDays, terms.WarrantyYears, terms.PaymentTerms, termsAsMap(terms))
	if err != nil {
		log.Printf("webhook response upsert failed: %v", err)
		return s.reject(ctx, inbound, "failed to save vendor response")
	}

	if err := s.cache.Invalidate(ctx, rfp.ID); err != nil {
		log.Printf("invalidate response cache for rfp %d failed: %v", rfp.ID, err)
	}
	s.publishEvent(ctx, model.EmailEvent{
		Direction: model.EmailDirectionInbound,
		RFPID:     rfp.ID,
		VendorID:  vendor.ID,
		Recipient: sender,
		Status:    "processed",
	})

	return InboundResult{
		Status:  "success",
		Message: "Vendor response processed and saved",
		Data: &InboundResultData{
			ResponseID: response.ID,
			RFPID:      rfp.ID,
			VendorID:   vendor.ID,
		},
	}
}

func (s *InboundService) resolveVendor(taggedID uint, sender string) (*model.Vendor, error) {
	if taggedID != 0 {
		vendor, err := s.vendors.GetByID(taggedID)
		if err != nil {
			return nil, err
		}
		if vendor != nil {
			return vendor, nil
		}
		// dangling tag, fall through to address matching
	}
	if sender == "" {
		return nil, nil
	}
	return s.vendors.GetByEmail(sender)
}

func (s *InboundService) resolveRFP(taggedID uint, subject string) (*model.RFP, error) {
	if taggedID != 0 {
		rfp, err := s.rfps.GetByID(taggedID)
		if err != nil {
			return nil, err
		}
		if rfp != nil {
			return rfp, nil
		}
	}
	return s.rfps.GetByTitle(TitleFromSubject(subject))
}

func (s *InboundService) upsertResponse(
	rfpID, vendorID uint,
	body string,
	totalPrice *float64,
	deliveryDays *int,
	warrantyYears *float64,
	paymentTerms *string,
	parsed model.JSONMap,
) (*model.VendorResponse, error) {
	existing, err := s.responses.GetByRFPAndVendor(rfpID, vendorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		existing.EmailRawText = body
		existing.EmailParsed = parsed
		existing.TotalPrice = totalPrice
		existing.DeliveryDays = deliveryDays
		existing.WarrantyYears = warrantyYears
		existing.PaymentTerms = paymentTerms
		existing.ReceivedAt = now
		if err := s.responses.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	response := &model.VendorResponse{
		RFPID:         rfpID,
		VendorID:      vendorID,
		EmailRawText:  body,
		EmailParsed:   parsed,
		TotalPrice:    totalPrice,
		DeliveryDays:  deliveryDays,
		WarrantyYears: warrantyYears,
		PaymentTerms:  paymentTerms,
		ReceivedAt:    now,
	}
	if err := s.responses.Create(response); err != nil {
		return nil, err
	}
	return response, nil
}

func (s *InboundService) reject(ctx context.Context, inbound InboundEmail, message string) InboundResult {
	s.publishEvent(ctx, model.EmailEvent{
		Direction: model.EmailDirectionInbound,
		RFPID:     inbound.RFPID,
		VendorID:  inbound.VendorID,
		Recipient: senderAddress(inbound.From),
		Status:    "rejected",
		Detail:    message,
	})
	return InboundResult{Status: "error", Message: message}
}

func (s *InboundService) publishEvent(ctx context.Context, event model.EmailEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("publish email event failed: %v", err)
	}
}

// TitleFromSubject recovers the RFP title from a reply subject line by
// stripping the outbound prefixes: "Re: RFP: " first, then "RFP: ", else the
// subject verbatim.
func TitleFromSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if strings.HasPrefix(subject, email.ReplySubjectPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(subject, email.ReplySubjectPrefix))
	}
	if strings.HasPrefix(subject, email.SubjectPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(subject, email.SubjectPrefix))
	}
	return subject
}

// senderAddress extracts the bare address from a From header that may carry a
// display name, e.g. `Acme Corp <sales@acme.example>`.
func senderAddress(from string) string {
	from = strings.TrimSpace(from)
	if addr, err := mail.ParseAddress(from); err == nil {
		return addr.Address
	}
	return from
}

// termsAsMap preserves the full extraction output on the response row,
// matching the email_parsed_json column's historical shape.
func termsAsMap(terms *ai.ReplyTerms) model.JSONMap {
	parsed := model.JSONMap{
		"total_price":    nil,
		"delivery_days":  nil,
		"warranty_years": nil,
		"payment_terms":  nil,
	}
	if terms.TotalPrice != nil {
		parsed["total_price"] = *terms.TotalPrice
	}
	if terms.DeliveryDays != nil {
		parsed["delivery_days"] = *terms.DeliveryDays
	}
	if terms.WarrantyYears != nil {
		parsed["warranty_years"] = *terms.WarrantyYears
	}
	if terms.PaymentTerms != nil {
		parsed["payment_terms"] = *terms.PaymentTerms
	}
	if terms.AdditionalNotes != nil {
		parsed["additional_notes"] = *terms.AdditionalNotes
	}
	return parsed
}
