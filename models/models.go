package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&User{},
		&Category{},

		// 2. Tables with single dependencies
		&Shop{},  // depends on: User
		&Order{}, // depends on: User

		// 3. Tables with multiple dependencies
		&Product{}, // depends on: Shop, Category
		&Review{},  // depends on: User, Product

		// 4. Junction tables
		&ProductOrder{}, // depends on: Product, Order
	}
}

// TableNames returns the physical table names in the same order as AllModels
func TableNames() []string {
	return []string{
		User{}.TableName(),
		Category{}.TableName(),
		Shop{}.TableName(),
		Order{}.TableName(),
		Product{}.TableName(),
		Review{}.TableName(),
		ProductOrder{}.TableName(),
	}
}
