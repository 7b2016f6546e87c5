package ds

// ShallowCopy returns a new slice holding the same elements, so that callers can append to or
// reorder it without touching ts. The elements themselves are not copied.
func ShallowCopy[T any](ts []T) []T {
	return append(make([]T, 0, len(ts)), ts...)
}
