package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// MovementRepository implementa a interface movement.Repository usando PostgreSQL
type MovementRepository struct {
	db database.DB
}

// NewMovementRepository cria uma nova instância de MovementRepository
func NewMovementRepository(db database.DB) movement.Repository {
	return &MovementRepository{db: db}
}

const movementColumns = `id, tenant_id, product_id, movement_type, quantity_change,
	quantity_before, quantity_after, notes, created_by, created_at`

func insertMovement(ctx context.Context, q querier, m *movement.Movement) error {
	_, err := q.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.TenantID, m.ProductID, string(m.Type), m.QuantityChange,
		m.QuantityBefore, m.QuantityAfter, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir movimentação: %w", err)
	}
	return nil
}

// Adjust implementa movement.Repository.Adjust
func (r *MovementRepository) Adjust(ctx context.Context, tenantID, productID string, build movement.BuildFunc) (*movement.Movement, error) {
	var result *movement.Movement

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var before int
		err := tx.QueryRow(ctx,
			"SELECT quantity FROM products WHERE tenant_id = $1 AND id = $2 FOR UPDATE",
			tenantID, productID,
		).Scan(&before)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return product.ErrProductNotFound
			}
			return fmt.Errorf("falha ao bloquear produto: %w", err)
		}

		m, err := build(before)
		if err != nil {
			return err
		}
		if m == nil {
			return nil
		}

		tag, err := tx.Exec(ctx,
			"UPDATE products SET quantity = $1, updated_at = $2 WHERE tenant_id = $3 AND id = $4",
			m.QuantityAfter, m.CreatedAt, tenantID, productID,
		)
		if err != nil {
			return fmt.Errorf("falha ao atualizar quantidade: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return product.ErrProductNotFound
		}

		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func scanMovement(row rowScanner) (*movement.Movement, error) {
	m := &movement.Movement{}
	var t string
	if err := row.Scan(&m.ID, &m.TenantID, &m.ProductID, &t, &m.QuantityChange,
		&m.QuantityBefore, &m.QuantityAfter, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Type = movement.Type(t)
	return m, nil
}

// FindByID implementa movement.Repository.FindByID
func (r *MovementRepository) FindByID(ctx context.Context, tenantID, id string) (*movement.Movement, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+movementColumns+" FROM stock_movements WHERE tenant_id = $1 AND id = $2",
		tenantID, id,
	)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, movement.ErrMovementNotFound
		}
		return nil, fmt.Errorf("falha ao buscar movimentação: %w", err)
	}
	return m, nil
}

// List implementa movement.Repository.List
func (r *MovementRepository) List(ctx context.Context, tenantID string, filter movement.ListFilter) ([]*movement.Movement, error) {
	limit := filter.Limit
	if limit <= 0 || limit > movement.DefaultListLimit {
		limit = movement.DefaultListLimit
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+movementColumns+`
		FROM stock_movements
		WHERE tenant_id = $1 AND ($2 = '' OR product_id::text = $2)
		ORDER BY created_at DESC
		LIMIT $3`,
		tenantID, filter.ProductID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar movimentações: %w", err)
	}
	defer rows.Close()

	var movements []*movement.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler movimentação: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao iterar movimentações: %w", err)
	}

	return movements, nil
}
