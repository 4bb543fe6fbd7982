package bitbuffer

import (
	"testing"
)

// benchWords builds a deterministic source slice for bulk appends.
func benchWords(count int) []uint32 {
	vals := make([]uint32, count)
	for i := range vals {
		vals[i] = uint32(i) * 0x9E3779B9
	}
	return vals
}

func BenchmarkAppendBits(b *testing.B) {
	buf := New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if buf.Len() > 1<<20 {
			buf = New()
		}
		if err := buf.AppendBits(uint32(i)&0x7FF, 11); err != nil {
			b.Fatalf("AppendBits failed: %v", err)
		}
	}
}

func BenchmarkAppendBits_SingleBit(b *testing.B) {
	buf := New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if buf.Len() > 1<<20 {
			buf = New()
		}
		if err := buf.AppendBits(uint32(i)&1, 1); err != nil {
			b.Fatalf("AppendBits failed: %v", err)
		}
	}
}

func BenchmarkAppendWords_Aligned(b *testing.B) {
	// 2016 bits fit the initial capacity with or without a one-bit
	// prefix, so neither bulk variant pays for growth
	vals := benchWords(63)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := New()
		if err := buf.AppendWords(vals, 2016); err != nil {
			b.Fatalf("AppendWords failed: %v", err)
		}
	}
}

func BenchmarkAppendWords_Misaligned(b *testing.B) {
	vals := benchWords(63)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := New()
		if err := buf.AppendBits(1, 1); err != nil {
			b.Fatalf("AppendBits failed: %v", err)
		}
		if err := buf.AppendWords(vals, 2016); err != nil {
			b.Fatalf("AppendWords failed: %v", err)
		}
	}
}

func BenchmarkGetBytes(b *testing.B) {
	buf := New()
	if err := buf.AppendWords(benchWords(128), 4096); err != nil {
		b.Fatalf("AppendWords failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := buf.GetBytes(); err != nil {
			b.Fatalf("GetBytes failed: %v", err)
		}
	}
}
