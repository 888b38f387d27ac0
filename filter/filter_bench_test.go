package filter

import (
	"context"
	"fmt"
	"testing"
)

// generateTestEntries creates granule-shaped test entries
func generateTestEntries(count int) []Entry {
	entries := make([]Entry, count)
	for i := range entries {
		entries[i] = Entry{
			"id":             fmt.Sprintf("G%d-LPDAAC", i),
			"title":          fmt.Sprintf("MOD09GA.A2020%03d.h10v04.006", i%365+1),
			"cloud_cover":    fmt.Sprintf("%d", i%100),
			"day_night_flag": []string{"DAY", "NIGHT", "BOTH"}[i%3],
			"time_start":     "2020-01-01T00:00:00.000Z",
		}
	}
	return entries
}

func BenchmarkCompile(b *testing.B) {
	expressions := []struct {
		name string
		expr string
	}{
		{"simple", `day_night_flag == "DAY"`},
		{"complex", `day_night_flag == "DAY" and num(cloud_cover) < 20 and contains(title, "h10v04")`},
	}

	for _, tc := range expressions {
		b.Run(tc.name, func(b *testing.B) {
			compiler := NewExprCompiler()
			for b.Loop() {
				_, _ = compiler.Compile(tc.expr)
			}
		})
		b.Run(tc.name+"_cached", func(b *testing.B) {
			compiler := NewExprCompiler(WithCache(10))
			for b.Loop() {
				_, _ = compiler.Compile(tc.expr)
			}
		})
	}
}

func BenchmarkFilter(b *testing.B) {
	f, err := NewExprCompiler().Compile(`day_night_flag == "DAY" and num(cloud_cover) < 20`)
	if err != nil {
		b.Fatal(err)
	}

	for _, size := range []int{100, 1000, 10000} {
		entries := generateTestEntries(size)
		b.Run(fmt.Sprintf("entries_%d", size), func(b *testing.B) {
			evaluator := NewConcurrentEvaluator()
			for b.Loop() {
				_, _ = evaluator.Filter(context.Background(), f, entries)
			}
		})
	}
}
