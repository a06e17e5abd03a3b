package models

import "time"

// UserRole type for user role
type UserRole string

const (
	RoleSeller UserRole = "seller"
	RoleBuyer  UserRole = "buyer"
	RoleAdmin  UserRole = "administrator"
)

// DefaultUserRole is stored when a user is created without a role
const DefaultUserRole = RoleBuyer

// UserRoles lists every accepted role
func UserRoles() []UserRole {
	return []UserRole{RoleSeller, RoleBuyer, RoleAdmin}
}

// Valid reports whether r is one of the declared roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleSeller, RoleBuyer, RoleAdmin:
		return true
	}
	return false
}

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);not null" json:"email"`
	Phone     *string   `gorm:"type:varchar(50)" json:"phone,omitempty"`
	AddDate   time.Time `gorm:"column:add_date;autoCreateTime" json:"add_date"`
	ImagePath *string   `json:"image_path,omitempty"`
	Role      UserRole  `gorm:"column:user_role;type:varchar(20);not null;default:'buyer';check:user_role IN ('seller','buyer','administrator')" json:"user_role"`

	// Relationships
	Shop    *Shop    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"shop,omitempty"`
	Orders  []Order  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"orders,omitempty"`
	Reviews []Review `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"reviews,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
