package wikinode

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Stats counts what a run did with the pages it saw.
type Stats struct {
	Pages    int64
	Accepted int64
	Rejected [TooShort + 1]int64
}

func (s *Stats) record(sink Sink, n Node, r Reason) error {
	s.Pages++
	if r != Accepted {
		s.Rejected[r]++
		return nil
	}
	if err := sink.Emit(n); err != nil {
		return fmt.Errorf("emitting %q: %w", n.Title, err)
	}
	s.Accepted++
	return nil
}

func (s *Stats) tick(opts Options) {
	if opts.Progress != nil && opts.ProgressEvery > 0 && s.Pages%opts.ProgressEvery == 0 {
		opts.Progress(*s)
	}
}

// Run reads every page from p and emits a Node for each one that
// makes it through to sink, in the order the pages appear in the dump.
//
// Pages that don't qualify are only counted.  Errors from the parser
// or the sink end the run; the stats so far are returned with them.
// Canceling ctx stops the run between pages.
func Run(ctx context.Context, p Parser, sink Sink, opts Options) (Stats, error) {
	if opts.Workers > 1 {
		return runConcurrent(ctx, p, sink, opts)
	}

	var st Stats
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		page, err := p.Next()
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		n, r := Build(page, opts)
		if err := st.record(sink, n, r); err != nil {
			return st, err
		}
		st.tick(opts)
	}
}

type job struct {
	seq  int64
	page *Page
}

type built struct {
	seq    int64
	node   Node
	reason Reason
}

// runConcurrent builds nodes on opts.Workers goroutines and puts them
// back in page order before they reach the sink.
func runConcurrent(ctx context.Context, p Parser, sink Sink, opts Options) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var scanErr error
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, opts.Workers)
	results := make(chan built, opts.Workers)
	// Bounds the pages between the parser and the sink.
	inflight := make(chan struct{}, 2*opts.Workers)

	g.Go(func() error {
		defer close(jobs)
		for seq := int64(0); ; seq++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case inflight <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			page, err := p.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				// Let the pages already read through first.
				scanErr = err
				return nil
			}
			select {
			case jobs <- job{seq, page}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				n, r := Build(j.page, opts)
				select {
				case results <- built{j.seq, n, r}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var st Stats
	var emitErr error
	pending := map[int64]built{}
	next := int64(0)
	for b := range results {
		if emitErr != nil {
			continue
		}
		pending[b.seq] = b
		for {
			b, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			<-inflight
			if err := st.record(sink, b.node, b.reason); err != nil {
				emitErr = err
				cancel()
				break
			}
			st.tick(opts)
		}
	}

	err := g.Wait()
	switch {
	case emitErr != nil:
		return st, emitErr
	case err != nil:
		return st, err
	}
	return st, scanErr
}
