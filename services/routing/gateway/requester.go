package gateway

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// JSONGetter fetches a URL and decodes its JSON body
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out interface{}) error
}

// Requester sends batches of GET requests through a fixed number of workers.
// The batch is split into contiguous slices, one per worker, so results can be
// written by index and come back in input order.
type Requester struct {
	client  JSONGetter
	threads int
}

// NewRequester creates a requester with the given pool size
func NewRequester(client JSONGetter, threads int) *Requester {
	if threads < 1 {
		threads = 1
	}
	return &Requester{client: client, threads: threads}
}

// Threads returns the pool size
func (r *Requester) Threads() int {
	return r.threads
}

// Send calls handle for every url. handle receives the index of the url so it
// can store its result in place. The first error cancels the remaining
// requests and fails the whole batch.
func (r *Requester) Send(ctx context.Context, urls []string, handle func(ctx context.Context, i int, url string) error) error {
	if len(urls) == 0 {
		return nil
	}

	size := (len(urls) + r.threads - 1) / r.threads
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(urls); start += size {
		start, end := start, min(start+size, len(urls))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := handle(ctx, i, urls[i]); err != nil {
					return fmt.Errorf("request %d: %w", i, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Get fetches every url and returns the decoded bodies in input order
func Get[T any](ctx context.Context, r *Requester, urls []string) ([]T, error) {
	out := make([]T, len(urls))
	err := r.Send(ctx, urls, func(ctx context.Context, i int, url string) error {
		return r.client.GetJSON(ctx, url, &out[i])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
