package mesh

import (
	"errors"
	"fmt"
)

// Sentinel errors for mesh validation. Callers should branch on these with
// errors.Is rather than matching error strings.
var (
	// ErrIndexCount indicates the index buffer length is not a multiple of 3.
	ErrIndexCount = errors.New("mesh: index count not a multiple of 3")

	// ErrIndexOutOfRange indicates an index references a vertex beyond VertexCount.
	ErrIndexOutOfRange = errors.New("mesh: index out of range")

	// ErrPositionStride indicates PositionStride is smaller than the 3 floats required per vertex.
	ErrPositionStride = errors.New("mesh: position stride too small")

	// ErrAttributeStride indicates AttributeCount does not fit within AttributeStride.
	ErrAttributeStride = errors.New("mesh: attribute count exceeds attribute stride")

	// ErrAttributeProtectMask indicates AttributeProtectMask references a bit beyond the declared attribute stride.
	ErrAttributeProtectMask = errors.New("mesh: attribute protect mask references nonexistent attribute")

	// ErrMaxTriangles indicates Config.MaxTriangles is outside [4, 256].
	ErrMaxTriangles = errors.New("mesh: max triangles out of range")

	// ErrMinTriangles indicates Config.MinTriangles is greater than MaxTriangles.
	ErrMinTriangles = errors.New("mesh: min triangles exceeds max triangles")

	// ErrMaxVertices indicates Config.MaxVertices is outside (0, 256].
	ErrMaxVertices = errors.New("mesh: max vertices out of range")
)

// errorf wraps an inner error with the name of the offending operation,
// preserving the sentinel for errors.Is via %w.
func errorf(op string, err error) error {
	return fmt.Errorf("mesh: %s: %w", op, err)
}
