package ds

func Repeat[T any](n int, initial T) []T {
	if n < 0 {
		n = 0
	}
	ts := make([]T, n)
	for i := range ts {
		ts[i] = initial
	}
	return ts
}
