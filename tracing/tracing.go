package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("clusterlod")

// StartDepth opens a span covering one full main-loop iteration of the
// orchestrator (partition → lock → per-partition simplify/emit →
// re-clusterize), tagged with the depth being processed.
func StartDepth(ctx context.Context, depth, pendingCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "clusterlod.depth",
		trace.WithAttributes(
			attribute.Int("clusterlod.depth", depth),
			attribute.Int("clusterlod.pending_count", pendingCount),
		))
}

// StartPartition opens a span covering one partition's merge, simplify,
// and (if not stuck) re-clusterize step within a depth.
func StartPartition(ctx context.Context, depth, partitionIndex, clusterCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "clusterlod.partition",
		trace.WithAttributes(
			attribute.Int("clusterlod.depth", depth),
			attribute.Int("clusterlod.partition_index", partitionIndex),
			attribute.Int("clusterlod.cluster_count", clusterCount),
		))
}

// RecordPartitionOutcome annotates a partition span with whether it
// stalled and how many triangles it was reduced to.
func RecordPartitionOutcome(span trace.Span, stuck bool, simplifiedTriangles int, err float32) {
	span.SetAttributes(
		attribute.Bool("clusterlod.stuck", stuck),
		attribute.Int("clusterlod.simplified_triangles", simplifiedTriangles),
		attribute.Float64("clusterlod.error", float64(err)),
	)
}
