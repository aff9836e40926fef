// Package setstore manages named string sets, used for the keyword
// classifier's per-category term lists. Sets can be compiled in or loaded
// from a JSON config file mapping set name to a list of members.
package setstore

import (
	"context"
)

type SetStore interface {
	InSet(ctx context.Context, name, val string) (bool, error)
	// ListSet returns all members of the named set; empty for unknown sets.
	ListSet(ctx context.Context, name string) ([]string, error)
}
