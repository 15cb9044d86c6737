package util

// MapSlice applies a converter function to each element of a slice and returns a new slice.
func MapSlice[T any, R any](items []T, converter func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, converter(item))
	}
	return result
}

// Dedupe returns items without repeats, keeping first occurrences in order.
func Dedupe[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
