package app

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"rfphub/internal/ai"
	"rfphub/internal/model"
)

type RFPService struct {
	rfps      RFPStore
	vendors   VendorStore
	responses ResponseStore
	extractor ExtractionService
	gateway   NotificationGateway
	events    EmailEventPublisher
	cache     ResponseCache
}

type UpdateRFPInput struct {
	Title   *string
	RawText *string
	Status  *string
}

func NewRFPService(
	rfps RFPStore,
	vendors VendorStore,
	responses ResponseStore,
	extractor ExtractionService,
	gateway NotificationGateway,
	events EmailEventPublisher,
	cache ResponseCache,
) *RFPService {
	return &RFPService{
		rfps:      rfps,
		vendors:   vendors,
		responses: responses,
		extractor: extractor,
		gateway:   gateway,
		events:    events,
		cache:     cache,
	}
}

// Create runs extraction before any write so a failed extraction leaves no
// partial RFP behind.
func (s *RFPService) Create(ctx context.Context, title, rawText string) (*model.RFP, error) {
	title = strings.TrimSpace(title)
	rawText = strings.TrimSpace(rawText)
	if title == "" || rawText == "" {
		return nil, fmt.Errorf("%w: rfp title and raw text are required", ErrValidation)
	}

	structured, err := s.extractor.ParseRFP(ctx, rawText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	rfp := &model.RFP{
		Title:      title,
		RawText:    rawText,
		Structured: structured,
		Status:     model.RFPStatusDraft,
	}
	if err := s.rfps.Create(rfp); err != nil {
		return nil, err
	}
	return rfp, nil
}

func (s *RFPService) Get(id uint) (*model.RFP, error) {
	rfp, err := s.rfps.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, fmt.Errorf("%w: rfp %d", ErrNotFound, id)
	}
	return rfp, nil
}

func (s *RFPService) List() ([]model.RFP, error) {
	return s.rfps.List()
}

func (s *RFPService) Update(id uint, input UpdateRFPInput) (*model.RFP, error) {
	rfp, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: rfp title must not be empty", ErrValidation)
		}
		rfp.Title = title
	}
	if input.RawText != nil {
		rfp.RawText = *input.RawText
	}
	if input.Status != nil {
		if err := validateTransition(rfp.Status, *input.Status); err != nil {
			return nil, err
		}
		rfp.Status = *input.Status
	}

	if err := s.rfps.Update(rfp); err != nil {
		return nil, err
	}
	return rfp, nil
}

// validateTransition enforces the forward-only lifecycle
// DRAFT -> SENT -> EVALUATED. Writing the current status again is a no-op.
func validateTransition(current, next string) error {
	if next == current {
		return nil
	}
	allowed := map[string]string{
		model.RFPStatusDraft: model.RFPStatusSent,
		model.RFPStatusSent:  model.RFPStatusEvaluated,
	}
	if allowed[current] != next {
		return fmt.Errorf("%w: cannot transition rfp status from %s to %s", ErrValidation, current, next)
	}
	return nil
}

// Delete cascades: response rows go with the RFP in one transaction.
func (s *RFPService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.rfps.DeleteWithResponses(id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Printf("invalidate response cache for rfp %d failed: %v", id, err)
	}
	return nil
}

// SendToVendors resolves every vendor id strictly, dispatches one tagged mail
// per vendor, and transitions the RFP to SENT. Individual delivery failures are
// logged and audited but never abort the batch or the transition.
func (s *RFPService) SendToVendors(ctx context.Context, id uint, vendorIDs []uint) error {
	if len(vendorIDs) == 0 {
		return fmt.Errorf("%w: vendor_ids must not be empty", ErrValidation)
	}

	rfp, err := s.Get(id)
	if err != nil {
		return err
	}

	vendors, err := s.vendors.ListByIDs(vendorIDs)
	if err != nil {
		return err
	}
	if len(vendors) != len(vendorIDs) {
		return fmt.Errorf("%w: some vendor ids not found", ErrValidation)
	}

	results := s.gateway.SendRFP(ctx, rfp, vendors)
	for _, result := range results {
		status := "sent"
		detail := ""
		if result.Err != nil {
			status = "failed"
			detail = result.Err.Error()
			log.Printf("send rfp %d to %s failed: %v", rfp.ID, result.Recipient, result.Err)
		}
		s.publishEvent(ctx, model.EmailEvent{
			Direction: model.EmailDirectionOutbound,
			RFPID:     rfp.ID,
			VendorID:  result.VendorID,
			Recipient: result.Recipient,
			Status:    status,
			Detail:    detail,
		})
	}

	rfp.Status = model.RFPStatusSent
	return s.rfps.Update(rfp)
}

// Evaluate scores all responses for the RFP in one extraction-service call and
// writes the scores back. Rows absent from the returned recommendations are
// left untouched. Re-running overwrites previous scores.
func (s *RFPService) Evaluate(ctx context.Context, id uint) (*ai.EvaluationResult, error) {
	rfp, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	responses, err := s.responses.ListByRFP(id)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("%w: no vendor responses found for rfp %d", ErrValidation, id)
	}

	result, err := s.extractor.Evaluate(ctx, buildEvaluationInput(rfp, responses))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	for i := range responses {
		resp := &responses[i]
		score, ok := result.Recommendations[strconv.FormatUint(uint64(resp.VendorID), 10)]
		if !ok {
			continue
		}
		scoreCopy := score
		resp.AIScore = &scoreCopy
		resp.AIRecommended = result.BestVendorID != nil && *result.BestVendorID == resp.VendorID
		if err := s.responses.Update(resp); err != nil {
			return nil, err
		}
	}

	rfp.Status = model.RFPStatusEvaluated
	if err := s.rfps.Update(rfp); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Printf("invalidate response cache for rfp %d failed: %v", id, err)
	}
	return result, nil
}

func buildEvaluationInput(rfp *model.RFP, responses []model.VendorResponse) ai.EvaluationInput {
	input := ai.EvaluationInput{
		Title:       rfp.Title,
		BudgetRange: rfp.Structured["budget_range"],
		Timeline:    rfp.Structured["timeline"],
	}
	if reqs, ok := rfp.Structured["requirements"].([]interface{}); ok {
		input.Requirements = reqs
	}
	if criteria, ok := rfp.Structured["evaluation_criteria"].([]interface{}); ok {
		input.EvaluationCriteria = criteria
	}
	for _, resp := range responses {
		input.Vendors = append(input.Vendors, ai.VendorTerms{
			VendorID:      resp.VendorID,
			TotalPrice:    resp.TotalPrice,
			DeliveryDays:  resp.DeliveryDays,
			WarrantyYears: resp.WarrantyYears,
			PaymentTerms:  resp.PaymentTerms,
			EmailParsed:   resp.EmailParsed,
		})
	}
	return input
}

// ListResponses serves the joined response listing, through the cache when a
// fresh copy exists.
func (s *RFPService) ListResponses(ctx context.Context, id uint) ([]model.VendorResponseView, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	cached, ok, err := s.cache.GetResponses(ctx, id)
	if err != nil {
		log.Printf("read response cache for rfp %d failed: %v", id, err)
	} else if ok {
		return cached, nil
	}

	views, err := s.responses.ListByRFPWithVendor(id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetResponses(ctx, id, views); err != nil {
		log.Printf("write response cache for rfp %d failed: %v", id, err)
	}
	return views, nil
}

func (s *RFPService) publishEvent(ctx context.Context, event model.EmailEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("publish email event failed: %v", err)
	}
}
