package models

import (
	"testing"
)

func TestUserRoleValid(t *testing.T) {
	for _, r := range UserRoles() {
		if !r.Valid() {
			t.Errorf("Expected %q to be valid", r)
		}
	}
	for _, r := range []UserRole{"", "guest", "Buyer", "admin"} {
		if r.Valid() {
			t.Errorf("Expected %q to be invalid", r)
		}
	}
	if len(UserRoles()) != 3 {
		t.Errorf("Expected 3 roles, got %d", len(UserRoles()))
	}
	if DefaultUserRole != RoleBuyer {
		t.Errorf("Expected default role buyer, got %q", DefaultUserRole)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses() {
		if !s.Valid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	for _, s := range []OrderStatus{"", "cancelled", "NEW"} {
		if s.Valid() {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
	if len(OrderStatuses()) != 4 {
		t.Errorf("Expected 4 statuses, got %d", len(OrderStatuses()))
	}
	if DefaultOrderStatus != OrderNew {
		t.Errorf("Expected default status new, got %q", DefaultOrderStatus)
	}
}

func TestAllModelsParentsFirst(t *testing.T) {
	names := TableNames()
	if len(names) != len(AllModels()) {
		t.Fatalf("TableNames has %d entries, AllModels has %d", len(names), len(AllModels()))
	}

	position := make(map[string]int, len(names))
	for i, n := range names {
		position[n] = i
	}

	dependsOn := map[string][]string{
		"shops":         {"users"},
		"orders":        {"users"},
		"products":      {"shops", "categories"},
		"reviews":       {"users", "products"},
		"product_order": {"products", "orders"},
	}
	for child, parents := range dependsOn {
		for _, parent := range parents {
			if position[parent] >= position[child] {
				t.Errorf("%s must come before %s", parent, child)
			}
		}
	}
}
