// Package search fans a slot query out across the configured discovery
// adapters and merges whatever settles in time.
package search

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"stylist/internal/domain"
	"stylist/internal/providers/discovery"
)

const (
	// DefaultCallTimeout is the hard per-adapter bound. A timed-out adapter
	// is abandoned and reported as a failure for that adapter only.
	DefaultCallTimeout = 12 * time.Second
	// DefaultMaxInflight caps external calls in flight at once across every
	// Search call sharing the Unified, so concurrent slot fan-outs cannot
	// multiply the load on upstreams.
	DefaultMaxInflight = 6
)

// Result is one adapter's settled outcome: candidates on success, Err on
// failure, never both.
type Result struct {
	Provider   string
	Candidates []domain.Candidate
	Err        error
}

type Unified struct {
	adapters    []discovery.Adapter
	callTimeout time.Duration

	// inflight is shared by every Search call on this Unified; the cap is
	// global, not per fan-out.
	inflight *semaphore.Weighted
}

func NewUnified(adapters []discovery.Adapter, callTimeout time.Duration, maxInflight int) *Unified {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	if maxInflight <= 0 {
		maxInflight = DefaultMaxInflight
	}
	return &Unified{
		adapters:    adapters,
		callTimeout: callTimeout,
		inflight:    semaphore.NewWeighted(int64(maxInflight)),
	}
}

// Search invokes the selected adapters concurrently and returns one Result
// per invoked adapter, in adapter order, once every call has settled
// (success, failure, or per-call timeout). A slow adapter cannot block a
// faster one's results; partial results are always usable.
func (u *Unified) Search(ctx context.Context, query string, providers []string, opts discovery.Options) []Result {
	selected := u.selectAdapters(providers)
	results := make([]Result, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range selected {
		g.Go(func() error {
			if err := u.inflight.Acquire(gctx, 1); err != nil {
				results[i] = Result{Provider: adapter.Name(), Err: err}
				return nil
			}
			defer u.inflight.Release(1)
			callCtx, cancel := context.WithTimeout(gctx, u.callTimeout)
			defer cancel()
			candidates, err := adapter.Search(callCtx, query, opts)
			if err != nil {
				results[i] = Result{Provider: adapter.Name(), Err: err}
				return nil
			}
			results[i] = Result{Provider: adapter.Name(), Candidates: candidates}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Flatten merges successful results in order, discarding no candidate.
func Flatten(results []Result) []domain.Candidate {
	var out []domain.Candidate
	for _, r := range results {
		out = append(out, r.Candidates...)
	}
	return out
}

// selectAdapters honors the caller's provider priority list; an empty list
// selects every configured adapter.
func (u *Unified) selectAdapters(providers []string) []discovery.Adapter {
	if len(providers) == 0 {
		return u.adapters
	}
	byName := make(map[string]discovery.Adapter, len(u.adapters))
	for _, a := range u.adapters {
		byName[strings.ToLower(a.Name())] = a
	}
	var selected []discovery.Adapter
	for _, name := range providers {
		if a, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
			selected = append(selected, a)
		}
	}
	if len(selected) == 0 {
		return u.adapters
	}
	return selected
}
