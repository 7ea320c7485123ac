package util

// Dedup returns values with duplicates removed, preserving first-seen order.
func Dedup[T comparable](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Or returns the first non-empty slice. Like cmp.Or, but for slices, where
// "unset" means nil or empty.
func Or[T any](a, b []T) []T {
	if len(a) > 0 {
		return a
	}
	return b
}
