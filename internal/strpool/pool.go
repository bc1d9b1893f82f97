package strpool

import (
	"strings"
	"sync"
)

var pool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func Get() *strings.Builder {
	return pool.Get().(*strings.Builder)
}

func Put(b *strings.Builder) {
	b.Reset()
	pool.Put(b)
}

// Render builds a string with a pooled builder.
func Render(fn func(b *strings.Builder)) string {
	b := Get()
	defer Put(b)

	fn(b)
	return b.String()
}
