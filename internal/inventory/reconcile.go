// File: internal/inventory/reconcile.go
// Brief: Merges declared stacks with live status lookups, order preserved.

package inventory

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned by a LookupFunc when the backing store has no
// record for the stack. It is the normal outcome for a stack that has never
// been deployed and maps to StatusNotDeployed, unlike every other lookup
// error, which maps to StatusUnknown.
var ErrNotFound = errors.New("stack not found")

// LookupFunc resolves the live deployment state for one backing identifier.
type LookupFunc func(ctx context.Context, backingID string) (*StackDetails, error)

type ReconcileOptions struct {
	// Concurrency bounds parallel lookups. Values below 1 mean sequential.
	Concurrency int
}

// Reconcile produces exactly one ReconciledStack per declared stack, in
// declared order regardless of lookup completion order. A failed lookup
// never aborts the pass: the stack is marked StatusUnknown with the error
// retained, and the remaining stacks are still resolved.
func Reconcile(ctx context.Context, declared []DeclaredStack, lookup LookupFunc, opts ReconcileOptions) []ReconciledStack {
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	out := make([]ReconciledStack, len(declared))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, d := range declared {
		g.Go(func() error {
			out[i] = reconcileOne(ctx, d, lookup)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func reconcileOne(ctx context.Context, d DeclaredStack, lookup LookupFunc) ReconciledStack {
	rs := ReconciledStack{DeclaredStack: d}
	details, err := lookup(ctx, d.BackingID)
	switch {
	case errors.Is(err, ErrNotFound):
		rs.Status = StatusNotDeployed
	case err != nil:
		rs.Status = StatusUnknown
		rs.LookupErr = err
	case details == nil:
		rs.Status = StatusNotDeployed
	default:
		rs.Status = details.Status
		rs.RawStatus = details.RawStatus
		rs.StackID = details.StackID
		rs.CreatedAt = details.CreatedAt
		rs.UpdatedAt = details.UpdatedAt
		rs.Description = details.Description
		rs.Tags = details.Tags
	}
	return rs
}
