package movement

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TripleInvariant(t *testing.T) {
	m, err := New("tenant-1", "product-1", TypeStockIn, 5, 3, "recebimento", "user-1")

	require.NoError(t, err)
	assert.Equal(t, 5, m.QuantityBefore)
	assert.Equal(t, 3, m.QuantityChange)
	assert.Equal(t, 8, m.QuantityAfter)
	require.NotNil(t, m.Notes)
	assert.Equal(t, "recebimento", *m.Notes)
	require.NotNil(t, m.CreatedBy)
}

func TestNew_RejectsNegativeResult(t *testing.T) {
	_, err := New("tenant-1", "product-1", TypeStockOut, 2, -3, "", "")
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCheckChange(t *testing.T) {
	assert.NoError(t, CheckChange(TypeStockIn, 1))
	assert.ErrorIs(t, CheckChange(TypeStockIn, -1), ErrInvalidChange)
	assert.NoError(t, CheckChange(TypeStockOut, -1))
	assert.ErrorIs(t, CheckChange(TypeStockOut, 1), ErrInvalidChange)
	assert.ErrorIs(t, CheckChange(TypeStockTake, 0), ErrInvalidChange)
	assert.NoError(t, CheckChange(TypeAdjustment, -4))
	assert.NoError(t, CheckChange(TypeInitial, 0))
	assert.ErrorIs(t, CheckChange(Type("transfer"), 1), ErrInvalidType)
}

func TestApply_Conservation(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		initial := r.Intn(50)
		quantity := initial
		applied := 0

		for step := 0; step < 30; step++ {
			change := r.Intn(21) - 10
			if change == 0 {
				continue
			}
			after, err := Apply(quantity, change)
			if quantity+change < 0 {
				require.ErrorIs(t, err, ErrInsufficientStock)
				assert.Equal(t, quantity, after)
				continue
			}
			require.NoError(t, err)
			quantity = after
			applied += change
			require.GreaterOrEqual(t, quantity, 0)
		}

		assert.Equal(t, initial+applied, quantity)
	}
}

func TestInverse(t *testing.T) {
	in, err := New("t", "p", TypeStockIn, 0, 4, "", "")
	require.NoError(t, err)
	typ, change := in.Inverse()
	assert.Equal(t, TypeStockOut, typ)
	assert.Equal(t, -4, change)

	out, err := New("t", "p", TypeStockOut, 9, -2, "", "")
	require.NoError(t, err)
	typ, change = out.Inverse()
	assert.Equal(t, TypeStockIn, typ)
	assert.Equal(t, 2, change)
}
