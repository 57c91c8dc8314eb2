package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nanite-lod/clusterlod/tracing"
)

func TestStartDepthReturnsLiveSpan(t *testing.T) {
	ctx, span := tracing.StartDepth(context.Background(), 2, 10)
	defer span.End()

	require.NotNil(t, ctx)
	require.NotNil(t, span)
}

func TestStartPartitionAndRecordOutcomeDoNotPanic(t *testing.T) {
	ctx, span := tracing.StartPartition(context.Background(), 1, 0, 4)
	require.NotNil(t, ctx)

	require.NotPanics(t, func() {
		tracing.RecordPartitionOutcome(span, true, 12, 0.25)
		span.End()
	})
}
