package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const benchmarkHeader = `
/**
 * A point on the integer grid.
 */
typedef struct Point {
	int x;
	int y;
} Point;

/**
 * Adds two numbers.
 * @param x The first parameter
 * @param y The second parameter
 * @return The sum of x and y
 */
int add(int x, int y);

enum Color { RED, GREEN, BLUE };
`

func BenchmarkTokenize(b *testing.B) {
	src := strings.Repeat(benchmarkHeader, 50)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = Tokenize(src)
	}
}

func BenchmarkGenerate(b *testing.B) {
	src := strings.Repeat(benchmarkHeader, 50)
	gen := New()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateFiles(b *testing.B) {
	tempDir := b.TempDir()
	var paths []string
	for i := 0; i < 16; i++ {
		path := filepath.Join(tempDir, fmt.Sprintf("module%d.h", i))
		if err := os.WriteFile(path, []byte(strings.Repeat(benchmarkHeader, 10)), 0644); err != nil {
			b.Fatal(err)
		}
		paths = append(paths, path)
	}

	gen := New()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		for _, r := range gen.GenerateFiles(context.Background(), paths) {
			if r.Err != nil {
				b.Fatal(r.Err)
			}
		}
	}
}

func BenchmarkGenerateModuleCached(b *testing.B) {
	src := strings.Repeat(benchmarkHeader, 50)
	gen := New(WithCache(NewCache(16, 0)))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := gen.GenerateModule("bench", src); err != nil {
			b.Fatal(err)
		}
	}
}
