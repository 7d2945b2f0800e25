// Package resolver lists the files that belong to a dataset by querying an
// external catalog tool.
package resolver

import (
	"context"
	"fmt"
	"strings"
)

// Result is the outcome of a single catalog query. Exactly one of Paths or
// Err is meaningful: a failed query carries the reason in Err.
type Result struct {
	Dataset string
	Paths   []string
	Err     error
}

// OK reports whether the query succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Success builds a successful Result.
func Success(dataset string, paths []string) Result {
	return Result{Dataset: dataset, Paths: paths}
}

// Failure builds a failed Result.
func Failure(dataset string, err error) Result {
	return Result{Dataset: dataset, Err: err}
}

// Resolver lists the catalog paths of a dataset.
type Resolver interface {
	Resolve(ctx context.Context, dataset string) Result
}

// Func adapts an ordinary function to the Resolver interface.
type Func func(ctx context.Context, dataset string) ([]string, error)

// Resolve implements Resolver.
func (f Func) Resolve(ctx context.Context, dataset string) Result {
	paths, err := f(ctx, dataset)
	if err != nil {
		return Failure(dataset, err)
	}
	return Success(dataset, paths)
}

// Query returns the catalog query selecting every valid file of dataset.
func Query(dataset string) string {
	return fmt.Sprintf("file dataset=%s status=VALID", dataset)
}

// ParseOutput splits raw catalog output into paths. Lines are trimmed and
// blank lines dropped; order is preserved.
func ParseOutput(raw string) []string {
	paths := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
