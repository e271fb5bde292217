package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockOut(change int) movement.BuildFunc {
	return func(before int) (*movement.Movement, error) {
		return movement.New("t1", "p1", movement.TypeStockOut, before, change, "", "u1")
	}
}

// movementArgs devolve os argumentos esperados na inserção de uma movimentação
// de "p1" em "t1"; id, notas, autor e data não são conhecidos antes da chamada.
func movementArgs(t movement.Type, change, before, after int) []any {
	return []any{pgxmock.AnyArg(), "t1", "p1", string(t), change, before, after,
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()}
}

func TestMovementRepository_Adjust(t *testing.T) {
	mock := newMock(t)
	repo := NewMovementRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("(?s)SELECT quantity FROM products .* FOR UPDATE").
		WithArgs("t1", "p1").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(10))
	mock.ExpectExec("UPDATE products SET quantity").
		WithArgs(7, pgxmock.AnyArg(), "t1", "p1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO stock_movements").
		WithArgs(movementArgs(movement.TypeStockOut, -3, 10, 7)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	m, err := repo.Adjust(context.Background(), "t1", "p1", stockOut(-3))
	require.NoError(t, err)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 7, m.QuantityAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_AdjustInsufficientStockRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewMovementRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("(?s)SELECT quantity FROM products .* FOR UPDATE").
		WithArgs("t1", "p1").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(2))
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), "t1", "p1", stockOut(-3))
	assert.ErrorIs(t, err, movement.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_AdjustMissingProduct(t *testing.T) {
	mock := newMock(t)
	repo := NewMovementRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quantity FROM products").
		WithArgs("t1", "p1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), "t1", "p1", stockOut(-1))
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_AdjustNoChange(t *testing.T) {
	mock := newMock(t)
	repo := NewMovementRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quantity FROM products").
		WithArgs("t1", "p1").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(4))
	mock.ExpectCommit()

	m, err := repo.Adjust(context.Background(), "t1", "p1", func(int) (*movement.Movement, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_AdjustInsertFailureRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewMovementRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quantity FROM products").
		WithArgs("t1", "p1").
		WillReturnRows(pgxmock.NewRows([]string{"quantity"}).AddRow(10))
	mock.ExpectExec("UPDATE products SET quantity").
		WithArgs(7, pgxmock.AnyArg(), "t1", "p1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO stock_movements").
		WithArgs(movementArgs(movement.TypeStockOut, -3, 10, 7)...).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Adjust(context.Background(), "t1", "p1", stockOut(-3))
	assert.ErrorContains(t, err, "falha ao inserir movimentação")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewMovementRepository(mock)
	now := time.Now()
	notes := "Stock take adjustment"

	mock.ExpectQuery("(?s)SELECT .* FROM stock_movements").
		WithArgs("t1", "", movement.DefaultListLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "tenant_id", "product_id", "movement_type", "quantity_change",
			"quantity_before", "quantity_after", "notes", "created_by", "created_at"}).
			AddRow("m1", "t1", "p1", "stock_take", -2, 5, 3, &notes, nil, now))

	list, err := repo.List(context.Background(), "t1", movement.ListFilter{Limit: 1000})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, movement.TypeStockTake, list[0].Type)
	assert.Equal(t, list[0].QuantityBefore+list[0].QuantityChange, list[0].QuantityAfter)
	assert.Nil(t, list[0].CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_FindByID(t *testing.T) {
	mock := newMock(t)
	repo := NewMovementRepository(mock)

	mock.ExpectQuery("(?s)SELECT .* FROM stock_movements WHERE tenant_id").
		WithArgs("t1", "m1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "tenant_id", "product_id", "movement_type", "quantity_change",
			"quantity_before", "quantity_after", "notes", "created_by", "created_at"}).
			AddRow("m1", "t1", "p1", "stock_in", 4, 1, 5, nil, nil, time.Now()))
	mock.ExpectQuery("(?s)SELECT .* FROM stock_movements WHERE tenant_id").
		WithArgs("t1", "missing").
		WillReturnError(pgx.ErrNoRows)

	m, err := repo.FindByID(context.Background(), "t1", "m1")
	require.NoError(t, err)
	assert.Equal(t, movement.TypeStockIn, m.Type)

	_, err = repo.FindByID(context.Background(), "t1", "missing")
	assert.ErrorIs(t, err, movement.ErrMovementNotFound)
}
