// Package batch verifies many signatures over one message concurrently.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/KarpelesLab/dilithium"
)

// Verify checks every signature in sigs against msg under pk using at most
// workers goroutines and returns one result per signature, in order. The
// only error is the context's, when it is cancelled before all signatures
// were checked.
func Verify(ctx context.Context, pk *dilithium.PublicKey, msg []byte, sigs [][]byte, workers int) ([]bool, error) {
	if workers < 1 {
		workers = 1
	}

	valid := make([]bool, len(sigs))
	errGroup, verifyCtx := errgroup.WithContext(ctx)
	errGroup.SetLimit(workers)
	for i := range sigs {
		i := i
		errGroup.Go(func() error {
			if err := verifyCtx.Err(); err != nil {
				return err
			}
			valid[i] = dilithium.Verify(pk, msg, sigs[i])
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	return valid, nil
}

// AllValid reports whether every result is true. It is false for no results.
func AllValid(results []bool) bool {
	if len(results) == 0 {
		return false
	}
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}
