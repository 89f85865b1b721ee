package model

import "time"

// VendorResponse holds one vendor's reply to one RFP. The (RFP, vendor) pair is
// unique; a second reply from the same vendor overwrites the first.
type VendorResponse struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RFPID         uint      `gorm:"column:fk_rfp_id;not null;uniqueIndex:uq_rfp_vendor" json:"fk_rfp_id"`
	VendorID      uint      `gorm:"column:fk_vendor_id;not null;uniqueIndex:uq_rfp_vendor" json:"fk_vendor_id"`
	EmailRawText  string    `gorm:"column:email_raw_text;type:text;not null" json:"email_raw_text"`
	EmailParsed   JSONMap   `gorm:"column:email_parsed_json;type:json" json:"email_parsed_json"`
	TotalPrice    *float64  `gorm:"column:total_price" json:"total_price"`
	DeliveryDays  *int      `gorm:"column:delivery_days" json:"delivery_days"`
	WarrantyYears *float64  `gorm:"column:warranty_years" json:"warranty_years"`
	PaymentTerms  *string   `gorm:"column:payment_terms;size:255" json:"payment_terms"`
	AIScore       *float64  `gorm:"column:ai_score" json:"ai_score"`
	AIRecommended bool      `gorm:"column:ai_recommended;not null;default:false" json:"ai_recommended"`
	ReceivedAt    time.Time `gorm:"column:response_created_at;not null" json:"response_created_at"`
}

func (VendorResponse) TableName() string { return "vendor_rfp_response" }

// VendorResponseView is a response row joined with the vendor's display name,
// the shape served by the responses listing endpoint.
type VendorResponseView struct {
	VendorResponse
	VendorName string `gorm:"column:vendor_name" json:"vendor_name"`
}
