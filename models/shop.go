package models

import "time"

// Shop represents shops table. A user owns at most one shop, enforced by
// the unique index on user_id.
type Shop struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(100);not null" json:"email"`
	Phone       *string   `gorm:"type:varchar(50)" json:"phone,omitempty"`
	AddDate     time.Time `gorm:"column:add_date;autoCreateTime" json:"add_date"`
	ImagePath   *string   `json:"image_path,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Rating      float64   `gorm:"type:double precision;not null" json:"rating"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`

	// Relationships
	Owner    *User     `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Products []Product `gorm:"foreignKey:ShopID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"products,omitempty"`
}

// TableName specifies the table name for Shop
func (Shop) TableName() string {
	return "shops"
}
