package model

import "time"

type Vendor struct {
	ID        uint      `gorm:"column:vendor_id;primaryKey" json:"vendor_id"`
	Name      string    `gorm:"column:vendor_name;size:255;not null" json:"vendor_name"`
	Email     string    `gorm:"column:vendor_email;size:255;not null;uniqueIndex" json:"vendor_email"`
	Rating    *float64  `gorm:"column:vendor_rating" json:"vendor_rating"`
	CreatedAt time.Time `gorm:"column:vendor_created_at" json:"vendor_created_at"`
}

func (Vendor) TableName() string { return "vendor_info" }
