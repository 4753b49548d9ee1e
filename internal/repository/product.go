package repository

import (
	"context"
	"fmt"

	"github.com/duallane/go-shop-api/internal/database"
	"github.com/duallane/go-shop-api/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, category, search string) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
	DecrementStock(ctx context.Context, productID, quantity int64) error
}

type productRepo struct{ db database.Store }

func NewProductRepository(db database.Store) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	res, err := r.db.Execute(ctx,
		`INSERT INTO products (name, description, price, image_url, category, stock)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		product.Name, product.Description, product.Price,
		product.ImageURL, product.Category, product.Stock,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	product.ID = res.InsertID
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	res, err := r.db.Execute(ctx,
		`SELECT id, name, description, price, image_url, category, stock, created_at
		 FROM products WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	p := rowToProduct(res.Rows[0])
	return &p, nil
}

// List filters by exact category and by a LIKE search over name and
// description; either filter may be empty. Newest products first.
func (r *productRepo) List(ctx context.Context, category, search string) ([]model.Product, error) {
	query := `SELECT id, name, description, price, image_url, category, stock, created_at
		 FROM products WHERE 1=1`
	var args []any

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if search != "" {
		query += ` AND (name LIKE ? OR description LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC`

	res, err := r.db.Execute(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]model.Product, 0, len(res.Rows))
	for _, row := range res.Rows {
		products = append(products, rowToProduct(row))
	}
	return products, nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	res, err := r.db.Execute(ctx, `SELECT COUNT(*) AS n FROM products`)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	return res.Rows[0].Int64("n"), nil
}

// DecrementStock subtracts quantity without a guard or lock; two concurrent
// orders can both pass the stock check and drive stock negative. See the
// open questions in DESIGN.md.
func (r *productRepo) DecrementStock(ctx context.Context, productID, quantity int64) error {
	_, err := r.db.Execute(ctx,
		`UPDATE products SET stock = stock - ? WHERE id = ?`, quantity, productID,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

func rowToProduct(row database.Row) model.Product {
	return model.Product{
		ID:          row.Int64("id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		Price:       row.Int64("price"),
		ImageURL:    row.String("image_url"),
		Category:    row.String("category"),
		Stock:       row.Int64("stock"),
		CreatedAt:   row.Time("created_at"),
	}
}
