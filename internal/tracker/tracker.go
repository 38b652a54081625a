// Package tracker owns the per-entity poll cycle: it fetches DonorDrive
// endpoints, rebuilds record lists and derived scalars, and produces the
// formatted output mappings. One Run executes to completion before the
// next is triggered, so entity state needs no locking.
package tracker

import (
	"context"

	"go.uber.org/zap"

	"donordrive-tracker/internal/fetch"
)

// Fetcher is the boundary to the DonorDrive API. fetch.Client implements
// it; tests substitute fakes.
type Fetcher interface {
	// Object fetches and decodes a single JSON object.
	Object(ctx context.Context, url string) (map[string]any, error)
	// List fetches and decodes a JSON array of objects. An empty slice is
	// a valid result, distinct from an error.
	List(ctx context.Context, url string, opts fetch.Options) ([]map[string]any, error)
}

// Config carries the externally validated tracker settings.
type Config struct {
	// ParticipantID is the DonorDrive participant ID to track.
	ParticipantID string
	// TeamID, when set, makes the participant's cycle also run the team's.
	TeamID string
	// CurrencySymbol prefixes every formatted amount.
	CurrencySymbol string
	// DisplayCount is the N in "last N" display views.
	DisplayCount int
	// BaseAPIURL is the DonorDrive instance root, e.g.
	// "https://www.extra-life.org/api".
	BaseAPIURL string
}

// buildList converts a fetched JSON collection with the given builder.
func buildList[T any](items []map[string]any, build func(map[string]any) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, build(item))
	}
	return out
}

// refreshList fetches and rebuilds one record list, keeping the previous
// cycle's records when the fetch fails.
func refreshList[T any](ctx context.Context, client Fetcher, url string, opts fetch.Options,
	build func(map[string]any) T, prev []T) ([]T, error) {
	items, err := client.List(ctx, url, opts)
	if err != nil {
		return prev, err
	}
	return buildList(items, build), nil
}

// refresh is refreshList with the failure handling every caller wants: log
// a warning and carry the previous cycle's records forward.
func refresh[T any](ctx context.Context, client Fetcher, log *zap.Logger, name, url string,
	opts fetch.Options, build func(map[string]any) T, prev []T) []T {
	out, err := refreshList(ctx, client, url, opts, build, prev)
	if err != nil {
		log.Warn("couldn't refresh "+name, zap.Error(err))
	}
	return out
}
