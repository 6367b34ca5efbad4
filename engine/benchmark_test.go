package engine

import (
	"context"
	"testing"
)

func BenchmarkMap(b *testing.B) {
	m := New()
	src := user{Name: "ada", Age: 36, Email: "ada@example.com", Tags: []string{"a", "b", "c"}}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var dst userDTO
		if err := m.Map(context.Background(), src, &dst); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMapNested(b *testing.B) {
	m := New()

	head := &node{Name: "L0"}
	cur := head
	for i := 1; i < 16; i++ {
		cur.Next = &node{Name: "L"}
		cur = cur.Next
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var dst nodeDTO
		if err := m.Map(context.Background(), head, &dst); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMapSliceParallel(b *testing.B) {
	m := New()
	src := make([]user, 256)
	for i := range src {
		src[i] = user{Name: "n", Age: i}
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := MapSliceParallel[userDTO](context.Background(), m, src); err != nil {
			b.Fatal(err)
		}
	}
}
