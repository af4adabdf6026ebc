package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"locali/internal/domain"
	"locali/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO products (
		id, listing_id, name, description, price_cents, currency, is_active, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ListingID, p.Name, p.Description, p.PriceCents, p.Currency, p.IsActive,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, listingID, productID uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM products WHERE id = $1 AND listing_id = $2", productID, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *productRepo) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE listing_id = $1 ORDER BY created_at ASC", listingID)
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListByListing: %w", err)
	}
	return products, nil
}

func (r *productRepo) CountByListing(ctx context.Context, listingID uuid.UUID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM products WHERE listing_id = $1 AND is_active", listingID)
	if err != nil {
		return 0, fmt.Errorf("productRepo.CountByListing: %w", err)
	}
	return n, nil
}

func (r *productRepo) CountByListings(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(listingIDs))
	if len(listingIDs) == 0 {
		return counts, nil
	}

	query, args, err := sqlx.In(
		`SELECT listing_id, COUNT(*) AS n FROM products
		 WHERE listing_id IN (?) AND is_active
		 GROUP BY listing_id`, listingIDs)
	if err != nil {
		return nil, fmt.Errorf("productRepo.CountByListings build: %w", err)
	}

	var rows []struct {
		ListingID uuid.UUID `db:"listing_id"`
		N         int       `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("productRepo.CountByListings: %w", err)
	}
	for _, row := range rows {
		counts[row.ListingID] = row.N
	}
	return counts, nil
}

func (r *productRepo) Delete(ctx context.Context, listingID, productID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = $1 AND listing_id = $2", productID, listingID)
	if err != nil {
		return fmt.Errorf("productRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
