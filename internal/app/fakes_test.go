package app

import (
	"context"
	"fmt"
	"sync"

	"rfphub/internal/ai"
	"rfphub/internal/email"
	"rfphub/internal/model"
	"rfphub/internal/repository"
)

type fakeVendorStore struct {
	mu      sync.Mutex
	vendors map[uint]*model.Vendor
	nextID  uint
}

func newFakeVendorStore() *fakeVendorStore {
	return &fakeVendorStore{vendors: map[uint]*model.Vendor{}, nextID: 1}
}

func (f *fakeVendorStore) add(vendor model.Vendor) *model.Vendor {
	f.mu.Lock()
	defer f.mu.Unlock()
	if vendor.ID == 0 {
		vendor.ID = f.nextID
	}
	if vendor.ID >= f.nextID {
		f.nextID = vendor.ID + 1
	}
	stored := vendor
	f.vendors[stored.ID] = &stored
	return &stored
}

func (f *fakeVendorStore) Create(vendor *model.Vendor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.vendors {
		if existing.Email == vendor.Email {
			return fmt.Errorf("create vendor: %w", repository.ErrDuplicateKey)
		}
	}
	vendor.ID = f.nextID
	f.nextID++
	stored := *vendor
	f.vendors[vendor.ID] = &stored
	return nil
}

func (f *fakeVendorStore) List() ([]model.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Vendor
	for _, v := range f.vendors {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVendorStore) GetByID(id uint) (*model.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.vendors[id]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeVendorStore) GetByEmail(address string) (*model.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.vendors {
		if v.Email == address {
			copied := *v
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeVendorStore) ListByIDs(ids []uint) ([]model.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Vendor
	for _, id := range ids {
		if v, ok := f.vendors[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVendorStore) Update(vendor *model.Vendor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.vendors {
		if existing.ID != vendor.ID && existing.Email == vendor.Email {
			return fmt.Errorf("update vendor: %w", repository.ErrDuplicateKey)
		}
	}
	stored := *vendor
	f.vendors[vendor.ID] = &stored
	return nil
}

func (f *fakeVendorStore) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.vendors, id)
	return nil
}

type fakeRFPStore struct {
	mu        sync.Mutex
	rfps      map[uint]*model.RFP
	nextID    uint
	responses *fakeResponseStore
}

func newFakeRFPStore() *fakeRFPStore {
	return &fakeRFPStore{rfps: map[uint]*model.RFP{}, nextID: 1}
}

func (f *fakeRFPStore) add(rfp model.RFP) *model.RFP {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rfp.ID == 0 {
		rfp.ID = f.nextID
	}
	if rfp.ID >= f.nextID {
		f.nextID = rfp.ID + 1
	}
	stored := rfp
	f.rfps[stored.ID] = &stored
	return &stored
}

func (f *fakeRFPStore) Create(rfp *model.RFP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rfp.ID = f.nextID
	f.nextID++
	stored := *rfp
	f.rfps[rfp.ID] = &stored
	return nil
}

func (f *fakeRFPStore) List() ([]model.RFP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.RFP
	for _, r := range f.rfps {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRFPStore) GetByID(id uint) (*model.RFP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rfps[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRFPStore) GetByTitle(title string) (*model.RFP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rfps {
		if r.Title == title {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRFPStore) Update(rfp *model.RFP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *rfp
	f.rfps[rfp.ID] = &stored
	return nil
}

func (f *fakeRFPStore) DeleteWithResponses(id uint) error {
	f.mu.Lock()
	delete(f.rfps, id)
	f.mu.Unlock()
	if f.responses != nil {
		f.responses.deleteByRFP(id)
	}
	return nil
}

type fakeResponseStore struct {
	mu      sync.Mutex
	rows    map[uint]*model.VendorResponse
	nextID  uint
	vendors *fakeVendorStore
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{rows: map[uint]*model.VendorResponse{}, nextID: 1}
}

func (f *fakeResponseStore) add(resp model.VendorResponse) *model.VendorResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resp.ID == 0 {
		resp.ID = f.nextID
	}
	if resp.ID >= f.nextID {
		f.nextID = resp.ID + 1
	}
	stored := resp
	f.rows[stored.ID] = &stored
	return &stored
}

func (f *fakeResponseStore) Create(resp *model.VendorResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.RFPID == resp.RFPID && existing.VendorID == resp.VendorID {
			return fmt.Errorf("create response: %w", repository.ErrDuplicateKey)
		}
	}
	resp.ID = f.nextID
	f.nextID++
	stored := *resp
	f.rows[resp.ID] = &stored
	return nil
}

func (f *fakeResponseStore) Update(resp *model.VendorResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *resp
	f.rows[resp.ID] = &stored
	return nil
}

func (f *fakeResponseStore) GetByRFPAndVendor(rfpID, vendorID uint) (*model.VendorResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.RFPID == rfpID && r.VendorID == vendorID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeResponseStore) ListByRFP(rfpID uint) ([]model.VendorResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.VendorResponse
	for _, r := range f.rows {
		if r.RFPID == rfpID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResponseStore) ListByRFPWithVendor(rfpID uint) ([]model.VendorResponseView, error) {
	rows, _ := f.ListByRFP(rfpID)
	var out []model.VendorResponseView
	for _, r := range rows {
		view := model.VendorResponseView{VendorResponse: r}
		if f.vendors != nil {
			if v, _ := f.vendors.GetByID(r.VendorID); v != nil {
				view.VendorName = v.Name
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (f *fakeResponseStore) CountByVendor(vendorID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.rows {
		if r.VendorID == vendorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeResponseStore) deleteByRFP(rfpID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.rows {
		if r.RFPID == rfpID {
			delete(f.rows, id)
		}
	}
}

func (f *fakeResponseStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeExtractor struct {
	rfpResult map[string]interface{}
	rfpErr    error

	replyTerms *ai.ReplyTerms
	replyErr   error

	evalResult *ai.EvaluationResult
	evalErr    error

	rfpCalls   int
	replyCalls int
	evalCalls  int
}

func (f *fakeExtractor) ParseRFP(ctx context.Context, rawText string) (map[string]interface{}, error) {
	f.rfpCalls++
	return f.rfpResult, f.rfpErr
}

func (f *fakeExtractor) ParseVendorReply(ctx context.Context, emailText string) (*ai.ReplyTerms, error) {
	f.replyCalls++
	if f.replyErr != nil {
		return nil, f.replyErr
	}
	if f.replyTerms != nil {
		return f.replyTerms, nil
	}
	return &ai.ReplyTerms{}, nil
}

func (f *fakeExtractor) Evaluate(ctx context.Context, input ai.EvaluationInput) (*ai.EvaluationResult, error) {
	f.evalCalls++
	return f.evalResult, f.evalErr
}

type fakeGateway struct {
	results     []email.SendResult
	calls       int
	lastVendors []model.Vendor
}

func (f *fakeGateway) SendRFP(ctx context.Context, rfp *model.RFP, vendors []model.Vendor) []email.SendResult {
	f.calls++
	f.lastVendors = vendors
	if f.results != nil {
		return f.results
	}
	var out []email.SendResult
	for _, v := range vendors {
		out = append(out, email.SendResult{VendorID: v.ID, Recipient: v.Email, StatusCode: 202})
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []model.EmailEvent
}

func (f *fakePublisher) Publish(ctx context.Context, event model.EmailEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type fakeCache struct {
	mu            sync.Mutex
	entries       map[uint][]model.VendorResponseView
	invalidations []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[uint][]model.VendorResponseView{}}
}

func (f *fakeCache) GetResponses(ctx context.Context, rfpID uint) ([]model.VendorResponseView, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	views, ok := f.entries[rfpID]
	return views, ok, nil
}

func (f *fakeCache) SetResponses(ctx context.Context, rfpID uint, views []model.VendorResponseView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[rfpID] = views
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, rfpID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, rfpID)
	f.invalidations = append(f.invalidations, rfpID)
	return nil
}
