package store

import (
	"errors"
	"fmt"

	"github.com/marketplace/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a looked up row does not exist
var ErrNotFound = errors.New("record not found")

// Store reads and writes marketplace entities through a GORM handle. Bind it
// to a unit of work's transaction so a failing write rolls back everything
// done through the same Store.
type Store struct {
	db *gorm.DB
}

// New returns a Store using db, which may be a transaction
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts u. An empty role is stored as buyer.
func (s *Store) CreateUser(u *models.User) error {
	if err := s.db.Omit(clause.Associations).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateShop inserts sh. It fails when the owner already has a shop or
// does not exist.
func (s *Store) CreateShop(sh *models.Shop) error {
	if err := s.db.Omit(clause.Associations).Create(sh).Error; err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}
	return nil
}

// CreateCategory inserts c
func (s *Store) CreateCategory(c *models.Category) error {
	if err := s.db.Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// CreateProduct inserts p. Its shop and category must exist.
func (s *Store) CreateProduct(p *models.Product) error {
	if err := s.db.Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// CreateOrder inserts o. An empty status is stored as new.
func (s *Store) CreateOrder(o *models.Order) error {
	if err := s.db.Omit(clause.Associations).Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// CreateReview inserts r. Its user and product must exist.
func (s *Store) CreateReview(r *models.Review) error {
	if err := s.db.Omit(clause.Associations).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// AddProductToOrder links a product to an order. Linking a pair that is
// already linked is a no-op, so the pair stays one association.
func (s *Store) AddProductToOrder(orderID, productID uint) error {
	link := models.ProductOrder{ProductID: productID, OrderID: orderID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to add product %d to order %d: %w", productID, orderID, err)
	}
	return nil
}

// RemoveProductFromOrder deletes the link between a product and an order
func (s *Store) RemoveProductFromOrder(orderID, productID uint) error {
	err := s.db.Where("order_id = ? AND product_id = ?", orderID, productID).
		Delete(&models.ProductOrder{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove product %d from order %d: %w", productID, orderID, err)
	}
	return nil
}

// GetUser loads a user without relationships
func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &user, nil
}

// GetProduct loads a product with its shop and category
func (s *Store) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Shop").Preload("Category").First(&product, id).Error; err != nil {
		return nil, notFound("product", err)
	}
	return &product, nil
}

// GetOrder loads an order with its products
func (s *Store) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Products").First(&order, id).Error; err != nil {
		return nil, notFound("order", err)
	}
	return &order, nil
}

// UserShop returns the shop owned by the user
func (s *Store) UserShop(userID uint) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Where("user_id = ?", userID).First(&shop).Error; err != nil {
		return nil, notFound("shop", err)
	}
	return &shop, nil
}

// UserOrders returns the user's orders, oldest first, each with its products
func (s *Store) UserOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("products.id")
	}).Where("user_id = ?", userID).Order("id").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders of user %d: %w", userID, err)
	}
	return orders, nil
}

// UserReviews returns the reviews the user wrote
func (s *Store) UserReviews(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews of user %d: %w", userID, err)
	}
	return reviews, nil
}

// OrderProducts returns the products linked to an order
func (s *Store) OrderProducts(orderID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Joins("JOIN product_order ON product_order.product_id = products.id").
		Where("product_order.order_id = ?", orderID).
		Order("products.id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products of order %d: %w", orderID, err)
	}
	return products, nil
}

// ProductOrders returns the orders a product appears in
func (s *Store) ProductOrders(productID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Joins("JOIN product_order ON product_order.order_id = orders.id").
		Where("product_order.product_id = ?", productID).
		Order("orders.id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders of product %d: %w", productID, err)
	}
	return orders, nil
}

// ProductReviews returns the reviews written for a product
func (s *Store) ProductReviews(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("product_id = ?", productID).Order("id").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews of product %d: %w", productID, err)
	}
	return reviews, nil
}

// ShopProducts returns the products a shop offers
func (s *Store) ShopProducts(shopID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("shop_id = ?", shopID).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products of shop %d: %w", shopID, err)
	}
	return products, nil
}

// CategoryProducts returns the products in a category
func (s *Store) CategoryProducts(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("category_id = ?", categoryID).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products of category %d: %w", categoryID, err)
	}
	return products, nil
}

// DeleteOrder removes an order together with its product links. Other
// deletes are left to the foreign keys, which restrict removal of rows
// still referenced.
func (s *Store) DeleteOrder(orderID uint) error {
	if err := s.db.Where("order_id = ?", orderID).Delete(&models.ProductOrder{}).Error; err != nil {
		return fmt.Errorf("failed to unlink products of order %d: %w", orderID, err)
	}
	result := s.db.Delete(&models.Order{}, orderID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order %d: %w", orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

func notFound(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}
