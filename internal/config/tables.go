package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rshade/greenprocure/internal/benchmark"
	"github.com/rshade/greenprocure/internal/carbon"
)

// LoadFactors returns the emission factor table at path, or the embedded
// table when path is empty.
func LoadFactors(path string) (*carbon.Factors, error) {
	if path == "" {
		return carbon.DefaultFactors()
	}
	return openTable(path, carbon.LoadFactors)
}

// LoadBenchmarks returns the benchmark table at path, or the embedded table
// when path is empty.
func LoadBenchmarks(path string) (*benchmark.Table, error) {
	if path == "" {
		return benchmark.Default()
	}
	return openTable(path, benchmark.Load)
}

func openTable[T any](path string, load func(io.Reader) (*T, error)) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	t, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}
