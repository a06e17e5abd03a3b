package models

// Product represents products table
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `gorm:"type:double precision;not null" json:"price"`
	ImagePath   *string `json:"image_path,omitempty"`
	Rating      float64 `gorm:"type:double precision;not null" json:"rating"`
	ShopID      uint    `gorm:"not null" json:"shop_id"`
	CategoryID  uint    `gorm:"not null" json:"category_id"`

	// Relationships
	Shop     *Shop     `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"reviews,omitempty"`
	Orders   []Order   `gorm:"many2many:product_order" json:"orders,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// ProductOrder represents the product_order join table. It has no identity
// of its own; the composite key keeps each (product, order) pair unique.
type ProductOrder struct {
	ProductID uint `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	OrderID   uint `gorm:"primaryKey;autoIncrement:false" json:"order_id"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Order   *Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for ProductOrder
func (ProductOrder) TableName() string {
	return "product_order"
}
