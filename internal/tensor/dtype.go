// Package tensor provides dense row-major tensors whose matrix multiply runs
// through a compressed-row (CSR) sparse path.
package tensor

import "github.com/born-ml/spmm/internal/sparse"

// Float is a constraint for supported tensor element types.
type Float = sparse.Float

// typeName returns a human-readable name for the element type.
func typeName[T Float]() string {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return "float32"
	case float64:
		return "float64"
	default:
		return "float"
	}
}
