package app

import (
	"context"

	"rfphub/internal/ai"
	"rfphub/internal/email"
	"rfphub/internal/model"
)

// Store and collaborator contracts. Production wiring injects the gorm
// repositories and the real SendGrid/LLM clients; tests substitute fakes.

type VendorStore interface {
	Create(vendor *model.Vendor) error
	List() ([]model.Vendor, error)
	GetByID(id uint) (*model.Vendor, error)
	GetByEmail(email string) (*model.Vendor, error)
	ListByIDs(ids []uint) ([]model.Vendor, error)
	Update(vendor *model.Vendor) error
	Delete(id uint) error
}

type RFPStore interface {
	Create(rfp *model.RFP) error
	List() ([]model.RFP, error)
	GetByID(id uint) (*model.RFP, error)
	GetByTitle(title string) (*model.RFP, error)
	Update(rfp *model.RFP) error
	DeleteWithResponses(id uint) error
}

type ResponseStore interface {
	Create(resp *model.VendorResponse) error
	Update(resp *model.VendorResponse) error
	GetByRFPAndVendor(rfpID, vendorID uint) (*model.VendorResponse, error)
	ListByRFP(rfpID uint) ([]model.VendorResponse, error)
	ListByRFPWithVendor(rfpID uint) ([]model.VendorResponseView, error)
	CountByVendor(vendorID uint) (int64, error)
}

// ExtractionService converts free text into structured fields and scores
// response sets. Backed by the OpenAI-compatible LLM client.
type ExtractionService interface {
	ParseRFP(ctx context.Context, rawText string) (map[string]interface{}, error)
	ParseVendorReply(ctx context.Context, emailText string) (*ai.ReplyTerms, error)
	Evaluate(ctx context.Context, input ai.EvaluationInput) (*ai.EvaluationResult, error)
}

// NotificationGateway delivers one RFP to a set of vendors. Failures are
// reported per recipient, never as a batch error.
type NotificationGateway interface {
	SendRFP(ctx context.Context, rfp *model.RFP, vendors []model.Vendor) []email.SendResult
}

// EmailEventPublisher records mail activity on the audit queue. Publishing is
// best-effort; callers log and continue on failure.
type EmailEventPublisher interface {
	Publish(ctx context.Context, event model.EmailEvent) error
}

// ResponseCache holds the joined response listing per RFP.
type ResponseCache interface {
	GetResponses(ctx context.Context, rfpID uint) ([]model.VendorResponseView, bool, error)
	SetResponses(ctx context.Context, rfpID uint, views []model.VendorResponseView) error
	Invalidate(ctx context.Context, rfpID uint) error
}
