package models

// Category represents categories table
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Slug string `gorm:"type:varchar(255);not null" json:"slug"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"products,omitempty"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
