package model

import "time"

const (
	EmailDirectionOutbound = "outbound"
	EmailDirectionInbound  = "inbound"
)

// EmailEvent is an audit record of one outbound RFP mail attempt or one inbound
// webhook outcome. Rows are written asynchronously by the email event worker.
type EmailEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Direction string    `gorm:"size:16;not null;index" json:"direction"`
	RFPID     uint      `gorm:"column:rfp_id;index" json:"rfp_id"`
	VendorID  uint      `gorm:"column:vendor_id;index" json:"vendor_id"`
	Recipient string    `gorm:"size:255" json:"recipient"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	Detail    string    `gorm:"type:text" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

func (EmailEvent) TableName() string { return "email_event" }
