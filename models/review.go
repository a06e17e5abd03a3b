package models

import "time"

// Review represents reviews table
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReviewText *string   `gorm:"type:text" json:"review_text,omitempty"`
	AddDate    time.Time `gorm:"column:add_date;autoCreateTime" json:"add_date"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	ProductID  uint      `gorm:"not null" json:"product_id"`

	// Relationships
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for Review
func (Review) TableName() string {
	return "reviews"
}
