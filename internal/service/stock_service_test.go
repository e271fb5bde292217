package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockService_InAndOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Detergente", "DET-1", 5)

	in, err := f.stock.StockIn(ctx, f.actor, p.ID, 3, " recebimento ")
	require.NoError(t, err)
	assert.Equal(t, movement.TypeStockIn, in.Type)
	assert.Equal(t, 8, in.QuantityAfter)
	require.NotNil(t, in.Notes)
	assert.Equal(t, "recebimento", *in.Notes)

	out, err := f.stock.StockOut(ctx, f.actor, p.ID, 8, "")
	require.NoError(t, err)
	assert.Equal(t, -8, out.QuantityChange)
	assert.Equal(t, 0, f.db.quantity(p.ID))
	assert.Nil(t, out.Notes)
}

func TestStockService_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Sabão", "SAB-1", 2)

	_, err := f.stock.StockOut(ctx, f.actor, p.ID, 3, "")
	assert.ErrorIs(t, err, movement.ErrInsufficientStock)
	assert.Equal(t, 2, f.db.quantity(p.ID))

	_, err = f.stock.StockIn(ctx, f.actor, p.ID, 0, "")
	assert.ErrorIs(t, err, movement.ErrInvalidChange)

	_, err = f.stock.Apply(ctx, f.actor, p.ID, movement.Type("transfer"), 1, "")
	assert.ErrorIs(t, err, movement.ErrInvalidType)

	_, err = f.stock.StockIn(ctx, f.actor, "missing", 1, "")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestStockService_Revert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Pilha", "PIL-1", 1)

	in, err := f.stock.StockIn(ctx, f.actor, p.ID, 4, "")
	require.NoError(t, err)

	undo, err := f.stock.Revert(ctx, f.actor, in.ID)
	require.NoError(t, err)
	assert.Equal(t, movement.TypeStockOut, undo.Type)
	assert.Equal(t, -4, undo.QuantityChange)
	assert.Equal(t, 1, f.db.quantity(p.ID))

	_, err = f.stock.Revert(ctx, f.actor, "missing")
	assert.ErrorIs(t, err, movement.ErrMovementNotFound)
}

func TestStockService_HistoryNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Vela", "VEL-1", 1)
	_, err := f.stock.StockIn(ctx, f.actor, p.ID, 2, "")
	require.NoError(t, err)

	history, err := f.stock.History(ctx, "tenant-1", p.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, movement.TypeStockIn, history[0].Type)
	assert.Equal(t, movement.TypeInitial, history[1].Type)
}

func TestStockService_Conservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Parafuso", "PAR-1", 20)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		qty := r.Intn(10) + 1
		if r.Intn(2) == 0 {
			_, err := f.stock.StockIn(ctx, f.actor, p.ID, qty, "")
			require.NoError(t, err)
			continue
		}
		_, err := f.stock.StockOut(ctx, f.actor, p.ID, qty, "")
		if err != nil {
			require.ErrorIs(t, err, movement.ErrInsufficientStock)
		}
	}

	sum := 0
	for _, m := range f.db.movementList() {
		assert.Equal(t, m.QuantityBefore+m.QuantityChange, m.QuantityAfter)
		sum += m.QuantityChange
	}
	assert.Equal(t, sum, f.db.quantity(p.ID))
	assert.GreaterOrEqual(t, f.db.quantity(p.ID), 0)
}

func TestStockService_StockTake(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.addProduct(t, "A", "A-1", 10)
	b := f.addProduct(t, "B", "B-1", 5)
	c := f.addProduct(t, "C", "C-1", 3)
	d := f.addProduct(t, "D", "D-1", 1)
	f.db.adjustErr[d.ID] = errors.New("conexão perdida")

	items, err := f.stock.StartStockTake(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, items, 4)

	counts := map[string]*int{
		a.ID: intPtr(8),
		b.ID: intPtr(5),
		d.ID: intPtr(4),
	}
	for i := range items {
		items[i].CountedQuantity = counts[items[i].ProductID]
	}

	result, err := f.stock.Reconcile(ctx, f.actor, items, "corredor 3")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Adjusted)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, d.ID, result.Failed[0].ProductID)

	assert.Equal(t, 8, f.db.quantity(a.ID))
	assert.Equal(t, 5, f.db.quantity(b.ID))
	assert.Equal(t, 3, f.db.quantity(c.ID))

	history, err := f.stock.History(ctx, "tenant-1", a.ID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, movement.TypeStockTake, history[0].Type)
	assert.Equal(t, -2, history[0].QuantityChange)
	require.NotNil(t, history[0].Notes)
	assert.Equal(t, "Stock take adjustment: corredor 3", *history[0].Notes)
}

func TestStockTakeItem_Discrepancy(t *testing.T) {
	_, ok := StockTakeItem{SystemQuantity: 4}.Discrepancy()
	assert.False(t, ok)

	diff, ok := StockTakeItem{SystemQuantity: 4, CountedQuantity: intPtr(9)}.Discrepancy()
	assert.True(t, ok)
	assert.Equal(t, 5, diff)
}
