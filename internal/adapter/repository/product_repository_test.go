package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "tenant_id", "name", "sku", "barcode", "quantity", "min_stock",
	"expiry_date", "category", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sampleProduct(t *testing.T) *product.Product {
	p, err := product.NewProduct("t1", product.Attributes{Name: "Arroz", SKU: "FOO-1", Quantity: 5})
	require.NoError(t, err)
	return p
}

func productInsertArgs(p *product.Product) []any {
	return []any{p.ID, p.TenantID, p.Name, p.SKU, p.Barcode, p.Quantity, p.MinStock,
		toDate(p.ExpiryDate), p.Category, p.CreatedAt, p.UpdatedAt}
}

func TestProductRepository_CreateWithInitialMovement(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	p := sampleProduct(t)
	initial, err := movement.New("t1", p.ID, movement.TypeInitial, 0, 5, "Initial stock", "u1")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, "t1", "Arroz", "FOO-1", p.Barcode, 5, 10, pgtype.Date{}, "General", p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO stock_movements").
		WithArgs(initial.ID, "t1", p.ID, "initial", 5, 0, 5, initial.Notes, initial.CreatedBy, initial.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), p, initial))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_CreateDuplicateSKU(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	p := sampleProduct(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(productInsertArgs(p)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "products_tenant_id_sku_key"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), p, nil)
	assert.ErrorIs(t, err, product.ErrDuplicateSKU)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByID(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	now := time.Now()
	barcode := "789"
	expiry := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("(?s)SELECT .* FROM products WHERE tenant_id = \\$1 AND id = \\$2").
		WithArgs("t1", "p1").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow("p1", "t1", "Arroz", "FOO-1", &barcode, 3, 10, pgtype.Date{Time: expiry, Valid: true}, "General", now, now))

	p, err := repo.FindByID(context.Background(), "t1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Arroz", p.Name)
	assert.Equal(t, "789", *p.Barcode)
	require.NotNil(t, p.ExpiryDate)
	assert.Equal(t, "2030-05-01", p.ExpiryDate.Format(product.DateLayout))

	mock.ExpectQuery("(?s)SELECT .* FROM products").
		WithArgs("t1", "missing").
		WillReturnError(pgx.ErrNoRows)
	_, err = repo.FindByID(context.Background(), "t1", "missing")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListAndCount(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	now := time.Now()
	filter := product.ListFilter{Search: "50%", Category: "General", Limit: 20}

	mock.ExpectQuery("(?s)SELECT .* FROM products").
		WithArgs("t1", "50%", `%50\%%`, "General", 20, 0).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow("p1", "t1", "Arroz 50%", "FOO-1", nil, 3, 10, pgtype.Date{}, "General", now, now).
			AddRow("p2", "t1", "Feijão 50%", "FOO-2", nil, 0, 10, pgtype.Date{}, "General", now, now))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("t1", "50%", `%50\%%`, "General").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	products, err := repo.List(context.Background(), "t1", filter)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Nil(t, products[0].Barcode)
	assert.Nil(t, products[0].ExpiryDate)

	count, err := repo.Count(context.Background(), "t1", filter)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateAndDeleteNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	p := sampleProduct(t)

	mock.ExpectExec("UPDATE products").
		WithArgs(p.Name, p.SKU, p.Barcode, p.MinStock, pgtype.Date{}, p.Category, p.UpdatedAt, "t1", p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec("DELETE FROM products").WithArgs("t1", "p1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Update(context.Background(), p), product.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "t1", "p1"), product.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
