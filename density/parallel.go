package density

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pointskel/progress"
)

// forEach calls fn(i) for every i in [0, n), fanning out over o.Workers
// goroutines. Each fn call must only write to slot i of its outputs. The
// first error cancels the remaining work and is returned; a cancelled ctx
// returns ctx.Err().
func forEach(ctx context.Context, n int, o Options, stage string, fn func(i int) error) error {
	o.Reporter.Stage(stage)
	ticker := progress.NewTicker(o.Reporter, stage, n)

	if o.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
			ticker.Tick(i + 1)
		}
		return nil
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
			mu.Lock()
			done++
			ticker.Tick(done)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
