package contextutil_test

import (
	"context"
	"testing"

	"go-leave/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExtractMetadata(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, contextutil.Metadata{}, contextutil.ExtractMetadata(ctx))

	ctx = contextutil.WithRequestID(ctx, "req-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithEmployeeID(ctx, "emp-1")

	assert.Equal(t, contextutil.Metadata{
		RequestID:  "req-1",
		UserID:     "user-1",
		EmployeeID: "emp-1",
	}, contextutil.ExtractMetadata(ctx))
}

func TestGetLogger(t *testing.T) {
	fallback := zap.NewExample()
	scoped := zap.NewExample().Named("scoped")

	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, fallback))
}
