package nschema

import (
	"github.com/samber/lo"
)

func hashString(s string) int32 {
	return lo.Reduce(
		[]byte(s),
		func(result int32, b byte, _ int) int32 {
			return result*53 + int32(b)
		},
		0,
	)
}

// Pool interns fields by content so that independently built but identical fields end up
// sharing one backing allocation.
type Pool struct {
	buckets map[int32][]Field
	size    int
}

func NewPool() *Pool {
	return &Pool{
		buckets: map[int32][]Field{},
	}
}

// Intern returns the pooled handle with the same content as f, adding f if there is none.
func (r *Pool) Intern(f Field) Field {
	key := f.key()
	hash := hashString(key)
	existing, ok := lo.Find(r.buckets[hash], func(candidate Field) bool {
		return candidate.key() == key
	})
	if ok {
		return existing
	}
	r.buckets[hash] = append(r.buckets[hash], f)
	r.size++
	return f
}

func (r *Pool) Len() int {
	return r.size
}
