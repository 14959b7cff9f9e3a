package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"quickbuy/internal/apperr"
	"quickbuy/internal/models"
)

type ProductStore struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = "id, name, description, price, category, brand, image, stock, seller_id, discount_percentage, rating, created_at, updated_at"

// filterClause builds the WHERE fragment shared by the page query and the
// count query, so pagination meta always reflects the full filtered set.
func filterClause(f models.ProductFilter) (string, []interface{}) {
	clause := " WHERE 1=1"
	var args []interface{}

	if f.Category != "" && f.Category != "all" {
		clause += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.Brand != "" {
		clause += " AND brand = ?"
		args = append(args, f.Brand)
	}
	if f.Search != "" {
		clause += " AND (name LIKE ? OR description LIKE ?)"
		term := "%" + f.Search + "%"
		args = append(args, term, term)
	}
	if f.MinPrice != nil {
		clause += " AND price >= ?"
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		clause += " AND price <= ?"
		args = append(args, *f.MaxPrice)
	}
	return clause, args
}

func orderClause(sort models.SortKey) string {
	switch sort {
	case models.SortPriceLow:
		return " ORDER BY price ASC"
	case models.SortPriceHigh:
		return " ORDER BY price DESC"
	case models.SortNewest:
		return " ORDER BY created_at DESC"
	default:
		// popularity is the default for unset and unrecognized keys
		return " ORDER BY rating DESC"
	}
}

// List returns one page of products matching the filter plus the total count
// over the same filter. Page and PageSize must already be normalized (>= 1).
func (s *ProductStore) List(ctx context.Context, f models.ProductFilter) ([]models.Product, int, error) {
	where, args := filterClause(f)

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	query := "SELECT " + productColumns + " FROM products" + where + orderClause(f.Sort) + " LIMIT ? OFFSET ?"
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	products := []models.Product{}
	if err := s.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("listing products: %w", err)
	}
	return products, total, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding product by id: %w", err)
	}
	return &product, nil
}

// OwnerID resolves a product to its owning seller id, for ownership checks.
func (s *ProductStore) OwnerID(ctx context.Context, id int64) (int64, error) {
	var sellerID int64
	err := s.db.GetContext(ctx, &sellerID, "SELECT seller_id FROM products WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.NotFound("Product not found")
	}
	if err != nil {
		return 0, fmt.Errorf("resolving product owner: %w", err)
	}
	return sellerID, nil
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price, category, brand, image, stock, seller_id, discount_percentage, rating)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price, p.Category, p.Brand, p.Image, p.Stock, p.SellerID, p.DiscountPercentage, p.Rating,
	)
	if err != nil {
		return 0, fmt.Errorf("creating product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new product id: %w", err)
	}
	return id, nil
}

// Update applies an allow-listed partial update. The SET clause is built only
// from the named optional fields; the seller is never touched.
func (s *ProductStore) Update(ctx context.Context, id int64, upd models.ProductUpdate) error {
	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Brand != nil {
		add("brand", *upd.Brand)
	}
	if upd.Image != nil {
		add("image", *upd.Image)
	}
	if upd.Stock != nil {
		add("stock", *upd.Stock)
	}
	if upd.DiscountPercentage != nil {
		add("discount_percentage", *upd.DiscountPercentage)
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE products SET " + strings.Join(sets, ", ") + ", updated_at = ? WHERE id = ?"
	args = append(args, time.Now().UTC(), id)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}
