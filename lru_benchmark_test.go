package lru

import (
	"strconv"
	"testing"
)

const benchmarkCapacity = 1024

// BenchmarkCache_Add measures the cost of adding items to the cache
// when the cache is not yet full.
func BenchmarkCache_Add(b *testing.B) {
	cache, _ := New[int, int](benchmarkCapacity)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cache.Add(i, i)
	}
}

// BenchmarkCache_Get_Hit measures the cost of a cache hit, the
// performance-critical path.
func BenchmarkCache_Get_Hit(b *testing.B) {
	cache, _ := New[int, int](benchmarkCapacity)

	// Pre-fill the cache to ensure all Get operations are hits.
	for i := 0; i < benchmarkCapacity; i++ {
		cache.Add(i, i)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cache.Get(i % benchmarkCapacity)
	}
}

// BenchmarkCache_Add_Eviction measures the cost of adding items
// when the cache is full and every insert evicts.
func BenchmarkCache_Add_Eviction(b *testing.B) {
	cache, _ := New[int, int](benchmarkCapacity)

	for i := 0; i < benchmarkCapacity; i++ {
		cache.Add(i, i)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cache.Add(i+benchmarkCapacity, i)
	}
}

// BenchmarkCache_Get_Parallel measures concurrent cache reads.
func BenchmarkCache_Get_Parallel(b *testing.B) {
	cache, _ := New[string, string](benchmarkCapacity)

	for i := 0; i < benchmarkCapacity; i++ {
		key := strconv.Itoa(i)
		cache.Add(key, key)
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			cache.Get(strconv.Itoa(i % benchmarkCapacity))
			i++
		}
	})
}
