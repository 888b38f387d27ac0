package filter

import (
	"context"
)

// Entry is a single decoded CMR feed entry.
type Entry = map[string]any

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	// Evaluate checks if an entry matches the filter criteria
	Evaluate(entry Entry) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator applies a filter to a list of entries
type Evaluator interface {
	// Filter returns the entries matching f, in their original order
	Filter(ctx context.Context, f CompiledFilter, entries []Entry) ([]Entry, error)
}
