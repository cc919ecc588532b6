package correlationid_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supervape/catalog/pkg/correlationid"
)

func TestContextRoundTrip(t *testing.T) {
	t.Run("Should return the stored correlation id", func(t *testing.T) {
		ctx := correlationid.NewContext(context.Background(), "abc-123")

		id, ok := correlationid.FromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc-123", id)
	})

	t.Run("Should report absence on a bare context", func(t *testing.T) {
		_, ok := correlationid.FromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestNew(t *testing.T) {
	assert.NotEqual(t, correlationid.New(), correlationid.New())
}
