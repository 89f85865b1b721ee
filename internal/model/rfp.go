package model

import "time"

// RFP lifecycle statuses. Transitions move forward only.
const (
	RFPStatusDraft     = "DRAFT"
	RFPStatusSent      = "SENT"
	RFPStatusEvaluated = "EVALUATED"
)

type RFP struct {
	ID         uint      `gorm:"column:rfp_id;primaryKey" json:"rfp_id"`
	Title      string    `gorm:"column:rfp_title;size:500;not null" json:"rfp_title"`
	RawText    string    `gorm:"column:rfp_raw_text;type:text;not null" json:"rfp_raw_text"`
	Structured JSONMap   `gorm:"column:rfp_structured_json;type:json" json:"rfp_structured_json"`
	Status     string    `gorm:"column:rfp_status;size:50;not null;default:DRAFT" json:"rfp_status"`
	CreatedAt  time.Time `gorm:"column:rfp_created_at" json:"rfp_created_at"`
}

func (RFP) TableName() string { return "rfp_info" }
