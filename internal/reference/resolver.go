// Package reference resolves natural keys (botanist names) to surrogate IDs
// through a lookup table fetched once per batch from the reference store.
//
// Resolution is all-or-nothing: a missing botanist indicates an upstream
// seeding bug, not a data-quality issue, so a single unresolved name fails
// the entire batch rather than dropping the offending rows.
package reference

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

// unnamedKey stands in for rows whose botanist name is absent entirely; they
// are just as unresolvable as an unknown name.
const unnamedKey = "<missing botanist name>"

// LookupProvider supplies the botanist name to surrogate ID mapping. The
// database client implements it; tests use an in-memory fake.
type LookupProvider interface {
	BotanistLookup(ctx context.Context) (map[string]int, error)
}

// MissingReferenceError reports every distinct botanist name in a batch that
// could not be resolved against the reference store.
type MissingReferenceError struct {
	Names []string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("missing botanist IDs for: %s", strings.Join(e.Names, ", "))
}

// Resolver builds and validates the name lookup for one transform invocation.
type Resolver struct {
	provider LookupProvider
}

// NewResolver returns a Resolver backed by the given provider.
func NewResolver(provider LookupProvider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve fetches the botanist lookup once and verifies that every row in the
// batch can be resolved. On success it returns the lookup table, treated as
// immutable for the duration of the batch. If any row's botanist name is
// absent from the lookup, it returns a MissingReferenceError enumerating
// every distinct missing name, and no rows resolve.
func (r *Resolver) Resolve(ctx context.Context, rows []model.NormalizedReading) (map[string]int, error) {
	lookup, err := r.provider.BotanistLookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching botanist lookup: %w", err)
	}

	if err := CheckCoverage(rows, lookup); err != nil {
		return nil, err
	}
	return lookup, nil
}

// CheckCoverage returns a MissingReferenceError if any row's botanist name is
// not present in the lookup, naming every distinct missing key.
func CheckCoverage(rows []model.NormalizedReading, lookup map[string]int) error {
	missing := make(map[string]struct{})
	for _, row := range rows {
		if row.BotanistName == nil {
			missing[unnamedKey] = struct{}{}
			continue
		}
		if _, ok := lookup[*row.BotanistName]; !ok {
			missing[*row.BotanistName] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return &MissingReferenceError{Names: names}
}
