package visualization

import "math"

// triangleVertices is the vertex count of one boid, as drawn by Triangle.
const triangleVertices = 3

// maxBatchVertices is the most vertices one draw call can address with
// uint16 indices.
const maxBatchVertices = math.MaxUint16

// batches splits n items of perItem vertices each into [start, end) ranges
// that each fit in one draw call.
func batches(n, perItem int) [][2]int {
	if n <= 0 || perItem <= 0 {
		return nil
	}
	size := max(maxBatchVertices/perItem, 1)
	out := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}
