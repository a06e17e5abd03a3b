package database

import (
	"context"
	"fmt"
	"log"

	"github.com/marketplace/models"
	"github.com/marketplace/store"
	"gorm.io/gorm"
)

// SeedData inserts a small sample marketplace in a single unit of work.
// A database that already has users is left untouched.
func SeedData(ctx context.Context, db *gorm.DB) error {
	log.Println("Checking if database needs seeding...")

	var userCount int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		log.Println("Database already has data. Skipping seed.")
		return nil
	}

	log.Println("Database is empty. Starting seed process...")
	return Transaction(ctx, db, func(tx *gorm.DB) error {
		s := store.New(tx)

		users, err := seedUsers(s)
		if err != nil {
			return err
		}
		shops, err := seedShops(s, users)
		if err != nil {
			return err
		}
		categories, err := seedCategories(s)
		if err != nil {
			return err
		}
		products, err := seedProducts(s, shops, categories)
		if err != nil {
			return err
		}
		if err := seedOrders(s, users, products); err != nil {
			return err
		}
		if err := seedReviews(s, users, products); err != nil {
			return err
		}

		log.Println("  ✓ Seed completed")
		return nil
	})
}

// ClearData deletes every row, children first, in one transaction. Either
// every table is emptied or none is.
func ClearData(db *gorm.DB) error {
	tables := models.TableNames()
	return db.Transaction(func(tx *gorm.DB) error {
		for i := len(tables) - 1; i >= 0; i-- {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %s", tables[i])).Error; err != nil {
				return fmt.Errorf("failed to clear table %s: %w", tables[i], err)
			}
			log.Printf("  Cleared table: %s", tables[i])
		}
		return nil
	})
}

func seedUsers(s *store.Store) (map[string]*models.User, error) {
	users := []*models.User{
		{Name: "Ana", Email: "a@x.com", Role: models.RoleSeller},
		{Name: "Boris", Email: "boris@example.com", Phone: strPtr("+7 900 000-00-01"), Role: models.RoleSeller},
		{Name: "Vera", Email: "vera@example.com"},
		{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin},
	}

	byName := make(map[string]*models.User, len(users))
	for _, u := range users {
		if err := s.CreateUser(u); err != nil {
			return nil, err
		}
		byName[u.Name] = u
	}
	log.Printf("  ✓ Seeded %d users", len(users))
	return byName, nil
}

func seedShops(s *store.Store, users map[string]*models.User) (map[string]*models.Shop, error) {
	shops := []*models.Shop{
		{Name: "Ana's Shop", Email: "a@x.com", Rating: 0.0, UserID: users["Ana"].ID},
		{Name: "Boris Hardware", Email: "shop@boris.example.com", Description: strPtr("Tools and garden supplies"), Rating: 4.5, UserID: users["Boris"].ID},
	}

	byName := make(map[string]*models.Shop, len(shops))
	for _, sh := range shops {
		if err := s.CreateShop(sh); err != nil {
			return nil, err
		}
		byName[sh.Name] = sh
	}
	log.Printf("  ✓ Seeded %d shops", len(shops))
	return byName, nil
}

func seedCategories(s *store.Store) (map[string]*models.Category, error) {
	categories := []*models.Category{
		{Name: "Books", Slug: "books"},
		{Name: "Tools", Slug: "tools"},
	}

	bySlug := make(map[string]*models.Category, len(categories))
	for _, c := range categories {
		if err := s.CreateCategory(c); err != nil {
			return nil, err
		}
		bySlug[c.Slug] = c
	}
	log.Printf("  ✓ Seeded %d categories", len(categories))
	return bySlug, nil
}

func seedProducts(s *store.Store, shops map[string]*models.Shop, categories map[string]*models.Category) (map[string]*models.Product, error) {
	products := []*models.Product{
		{Name: "Novel", Price: 9.99, Rating: 0.0, ShopID: shops["Ana's Shop"].ID, CategoryID: categories["books"].ID},
		{Name: "Cookbook", Description: strPtr("Recipes for every season"), Price: 24.50, Rating: 4.0, ShopID: shops["Ana's Shop"].ID, CategoryID: categories["books"].ID},
		{Name: "Hammer", Price: 15.00, Rating: 4.8, ShopID: shops["Boris Hardware"].ID, CategoryID: categories["tools"].ID},
	}

	byName := make(map[string]*models.Product, len(products))
	for _, p := range products {
		if err := s.CreateProduct(p); err != nil {
			return nil, err
		}
		byName[p.Name] = p
	}
	log.Printf("  ✓ Seeded %d products", len(products))
	return byName, nil
}

func seedOrders(s *store.Store, users map[string]*models.User, products map[string]*models.Product) error {
	orders := []struct {
		user     string
		status   models.OrderStatus
		products []string
	}{
		{"Ana", "", []string{"Novel"}},
		{"Vera", models.OrderProcessing, []string{"Cookbook", "Hammer"}},
	}

	for _, o := range orders {
		order := &models.Order{UserID: users[o.user].ID, Status: o.status}
		if err := s.CreateOrder(order); err != nil {
			return err
		}
		for _, name := range o.products {
			if err := s.AddProductToOrder(order.ID, products[name].ID); err != nil {
				return err
			}
		}
	}
	log.Printf("  ✓ Seeded %d orders", len(orders))
	return nil
}

func seedReviews(s *store.Store, users map[string]*models.User, products map[string]*models.Product) error {
	reviews := []*models.Review{
		{ReviewText: strPtr("Great recipes, clear instructions."), UserID: users["Vera"].ID, ProductID: products["Cookbook"].ID},
		{ReviewText: strPtr("Solid hammer."), UserID: users["Vera"].ID, ProductID: products["Hammer"].ID},
	}

	for _, r := range reviews {
		if err := s.CreateReview(r); err != nil {
			return err
		}
	}
	log.Printf("  ✓ Seeded %d reviews", len(reviews))
	return nil
}

// Helper functions for creating pointers
func strPtr(s string) *string {
	return &s
}
