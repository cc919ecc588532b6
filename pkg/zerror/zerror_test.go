package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supervape/catalog/pkg/zerror"
)

func TestZError(t *testing.T) {
	t.Run("Should carry status, code and message", func(t *testing.T) {
		err := zerror.NewNotFound("PRODUCT_NOT_FOUND", "Product not found")

		assert.Equal(t, zerror.StatusNotFound, err.Status())
		assert.Equal(t, "PRODUCT_NOT_FOUND", err.Code())
		assert.Equal(t, "Product not found", err.Msg())
	})

	t.Run("Should survive wrapping with errors.As", func(t *testing.T) {
		base := zerror.NewValidationFailed("VALIDATION_FAILED", "validation error")
		wrapped := fmt.Errorf("decode body: %w", base.WrapParent(errors.New("unexpected EOF")))

		var zErr zerror.ZError
		require.ErrorAs(t, wrapped, &zErr)
		assert.Equal(t, "VALIDATION_FAILED", zErr.Code())
		assert.EqualError(t, zErr.Parent(), "unexpected EOF")
	})

	t.Run("Should keep the original value when wrapping nil", func(t *testing.T) {
		base := zerror.NewConflict("ORDINAL_TAKEN", "ordinal already taken")
		assert.Equal(t, base, base.WrapParent(nil))
	})
}
