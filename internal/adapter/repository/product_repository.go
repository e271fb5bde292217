package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ProductRepository implementa a interface product.Repository usando PostgreSQL
type ProductRepository struct {
	db database.DB
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db database.DB) product.Repository {
	return &ProductRepository{db: db}
}

const productColumns = `id, tenant_id, name, sku, barcode, quantity, min_stock,
	expiry_date, category, created_at, updated_at`

func toDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*product.Product, error) {
	p := &product.Product{}
	var expiry pgtype.Date
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.SKU, &p.Barcode, &p.Quantity,
		&p.MinStock, &expiry, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		p.ExpiryDate = product.TruncateDate(&expiry.Time)
	}
	return p, nil
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product, initial *movement.Movement) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			p.ID, p.TenantID, p.Name, p.SKU, p.Barcode, p.Quantity, p.MinStock,
			toDate(p.ExpiryDate), p.Category, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			if database.IsUniqueViolation(err, "") {
				return product.ErrDuplicateSKU
			}
			return fmt.Errorf("falha ao inserir produto: %w", err)
		}

		if initial != nil {
			return insertMovement(ctx, tx, initial)
		}
		return nil
	})
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, tenantID, id string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE tenant_id = $1 AND id = $2",
		tenantID, id,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		return nil, fmt.Errorf("falha ao buscar produto: %w", err)
	}
	return p, nil
}

// FindByBarcode implementa product.Repository.FindByBarcode
func (r *ProductRepository) FindByBarcode(ctx context.Context, tenantID, barcode string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE tenant_id = $1 AND barcode = $2 ORDER BY created_at LIMIT 1",
		tenantID, barcode,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		return nil, fmt.Errorf("falha ao buscar produto pelo código de barras: %w", err)
	}
	return p, nil
}

const productFilter = `
	WHERE tenant_id = $1
	  AND ($2 = '' OR name ILIKE $3 OR sku ILIKE $3 OR COALESCE(barcode, '') ILIKE $3)
	  AND ($4 = '' OR category = $4)`

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, tenantID string, filter product.ListFilter) ([]*product.Product, error) {
	limit := filter.Limit
	if limit <= 0 || limit > product.MaxListLimit {
		limit = product.MaxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+productColumns+" FROM products"+productFilter+
			" ORDER BY created_at DESC LIMIT $5 OFFSET $6",
		tenantID, filter.Search, likePattern(filter.Search), filter.Category, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar produtos: %w", err)
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler produto: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao iterar produtos: %w", err)
	}

	return products, nil
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context, tenantID string, filter product.ListFilter) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM products"+productFilter,
		tenantID, filter.Search, likePattern(filter.Search), filter.Category,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("falha ao contar produtos: %w", err)
	}
	return count, nil
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $1, sku = $2, barcode = $3, min_stock = $4, expiry_date = $5,
		    category = $6, updated_at = $7
		WHERE tenant_id = $8 AND id = $9`,
		p.Name, p.SKU, p.Barcode, p.MinStock, toDate(p.ExpiryDate),
		p.Category, p.UpdatedAt, p.TenantID, p.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err, "") {
			return product.ErrDuplicateSKU
		}
		return fmt.Errorf("falha ao atualizar produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// Delete implementa product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return fmt.Errorf("falha ao remover produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}
