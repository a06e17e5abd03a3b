package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/marketplace/models"
	"github.com/marketplace/store"
	"gorm.io/gorm"
)

func TestIsConstraintViolation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("failed to create product: %w", gorm.ErrForeignKeyViolated), true},
		{fmt.Errorf("failed to create shop: %w", gorm.ErrDuplicatedKey), true},
		{gorm.ErrCheckConstraintViolated, true},
		{gorm.ErrRecordNotFound, false},
		{errors.New("connection refused"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsConstraintViolation(tt.err); got != tt.want {
			t.Errorf("IsConstraintViolation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestIsConstraintViolationOnDatabaseErrors(t *testing.T) {
	db := setupTestDB(t)
	s := store.New(db)

	owner := mustCreateUser(t, db, "ana")
	if err := s.CreateShop(&models.Shop{Name: "Ana's Shop", Email: "a@x.com", UserID: owner.ID}); err != nil {
		t.Fatalf("CreateShop returned error: %v", err)
	}

	tests := []struct {
		name  string
		write func() error
		want  bool
	}{
		{
			name: "missing foreign key",
			write: func() error {
				return s.CreateReview(&models.Review{UserID: owner.ID, ProductID: 999})
			},
			want: true,
		},
		{
			name: "second shop for owner",
			write: func() error {
				return s.CreateShop(&models.Shop{Name: "Second", Email: "b@x.com", UserID: owner.ID})
			},
			want: true,
		},
		{
			name: "unknown role",
			write: func() error {
				return s.CreateUser(&models.User{Name: "x", Email: "x@x.com", Role: "guest"})
			},
			want: true,
		},
		{
			name: "unknown order status",
			write: func() error {
				return s.CreateOrder(&models.Order{UserID: owner.ID, Status: "lost"})
			},
			want: true,
		},
		{
			name: "missing row",
			write: func() error {
				_, err := s.GetUser(owner.ID + 100)
				return err
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.write()
			if err == nil {
				t.Fatal("Expected an error")
			}
			if got := IsConstraintViolation(err); got != tt.want {
				t.Errorf("IsConstraintViolation(%v) = %v, want %v", err, got, tt.want)
			}
		})
	}
}
