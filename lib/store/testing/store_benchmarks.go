package testing

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/fsbox/lib/store"
)

// RunStoreBenchmarks runs all benchmarks for an IStore implementation
func RunStoreBenchmarks(b *testing.B, name string, factory StoreFactory) {
	b.Run("Write", func(b *testing.B) {
		benchmarkWrite(b, factory())
	})

	b.Run("WriteExisting", func(b *testing.B) {
		benchmarkWriteExisting(b, factory())
	})

	b.Run("WriteLargeValue", func(b *testing.B) {
		benchmarkWriteLargeValue(b, factory())
	})

	b.Run("Read", func(b *testing.B) {
		benchmarkRead(b, factory())
	})

	b.Run("Has", func(b *testing.B) {
		benchmarkHas(b, factory())
	})

	b.Run("List", func(b *testing.B) {
		benchmarkList(b, factory())
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkWrite(b *testing.B, s store.IStore) {
	value := []byte("benchmark-value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Write(fmt.Sprintf("key-%d", i), value); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}
}

func benchmarkWriteExisting(b *testing.B, s store.IStore) {
	value := []byte("benchmark-value")
	if err := s.Write("key", value); err != nil {
		b.Fatalf("Write failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Write("key", value); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}
}

func benchmarkWriteLargeValue(b *testing.B, s store.IStore) {
	value := make([]byte, 1024*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Write("key", value); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}
}

func benchmarkRead(b *testing.B, s store.IStore) {
	if err := s.Write("key", []byte("benchmark-value")); err != nil {
		b.Fatalf("Write failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, loaded, err := s.Read("key"); err != nil || !loaded {
			b.Fatalf("Read failed: loaded=%v err=%v", loaded, err)
		}
	}
}

func benchmarkHas(b *testing.B, s store.IStore) {
	if err := s.Write("key", []byte("benchmark-value")); err != nil {
		b.Fatalf("Write failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Has("key"); err != nil {
			b.Fatalf("Has failed: %v", err)
		}
	}
}

func benchmarkList(b *testing.B, s store.IStore) {
	for i := 0; i < 100; i++ {
		if err := s.Write(fmt.Sprintf("key-%d", i), []byte("v")); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.List(); err != nil {
			b.Fatalf("List failed: %v", err)
		}
	}
}
