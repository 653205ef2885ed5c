package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/types"
)

func TestOversellPolicy_BlockMode(t *testing.T) {
	p, err := NewOversellPolicy(ModeBlock, "")
	require.NoError(t, err)

	ctx := context.Background()

	// Within stock: fine
	err = p.Check(ctx, "Cotton 40s", types.NewQuantityFromFloat64(40), types.NewQuantityFromFloat64(100))
	assert.NoError(t, err)

	// Exactly at stock: fine
	err = p.Check(ctx, "Cotton 40s", types.NewQuantityFromFloat64(100), types.NewQuantityFromFloat64(100))
	assert.NoError(t, err)

	// Over stock: rejected
	err = p.Check(ctx, "Cotton 40s", types.NewQuantityFromFloat64(120), types.NewQuantityFromFloat64(100))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, "Cotton 40s", appErr.Details["item"])
}

func TestOversellPolicy_WarnModeNeverBlocks(t *testing.T) {
	p, err := NewOversellPolicy(ModeWarn, "")
	require.NoError(t, err)

	err = p.Check(context.Background(), "Silk 20D", types.NewQuantityFromFloat64(500), types.NewQuantityFromFloat64(1))
	assert.NoError(t, err)
}

func TestOversellPolicy_AllowModeSkipsEvaluation(t *testing.T) {
	// Allow mode must not even compile the expression
	p, err := NewOversellPolicy(ModeAllow, "this is not CEL")
	require.NoError(t, err)

	err = p.Check(context.Background(), "x", types.NewQuantityFromFloat64(10), 0)
	assert.NoError(t, err)
}

func TestOversellPolicy_CustomExpression(t *testing.T) {
	// Allow selling up to 10% over current stock
	p, err := NewOversellPolicy(ModeBlock, "requested <= available * 1.1")
	require.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, p.Check(ctx, "x", types.NewQuantityFromFloat64(109), types.NewQuantityFromFloat64(100)))
	assert.Error(t, p.Check(ctx, "x", types.NewQuantityFromFloat64(120), types.NewQuantityFromFloat64(100)))
}

func TestOversellPolicy_RejectsInvalidExpression(t *testing.T) {
	_, err := NewOversellPolicy(ModeBlock, "requested +")
	assert.Error(t, err)

	// Non-bool result is a configuration mistake
	_, err = NewOversellPolicy(ModeBlock, "requested - available")
	assert.Error(t, err)
}

func TestOversellPolicy_NilIsAllow(t *testing.T) {
	var p *OversellPolicy
	assert.NoError(t, p.Check(context.Background(), "x", types.NewQuantityFromFloat64(10), 0))
}
