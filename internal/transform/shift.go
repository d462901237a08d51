package transform

// Shift swaps the two halves of an even-length sequence, converting between
// transform-native ordering (DC first, negative frequencies wrapped into
// the upper half) and centered ordering (most negative frequency first).
// For even n the operation is its own inverse. All frequency reordering in
// the engine goes through this one function.
func Shift[T any](x []T) []T {
	n := len(x)
	half := n / 2
	out := make([]T, n)
	copy(out, x[half:])
	copy(out[n-half:], x[:half])
	return out
}
