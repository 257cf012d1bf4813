package normalizer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Input is one document handled by NormalizeAll. When Data is nil the
// document is read from Path; otherwise Path only names the document.
type Input struct {
	Path string
	Data []byte
}

func (in Input) name() string {
	if in.Path != "" {
		return in.Path
	}
	return "<bytes>"
}

// NormalizeAll decodes and normalizes each input on at most workers
// goroutines (runtime.GOMAXPROCS(0) when workers < 1). Results are returned
// in input order. The first failure cancels the remaining inputs and is
// returned along with it; inputs never started are left nil. A cancelled
// ctx is reported as its error.
func (n *Normalizer) NormalizeAll(ctx context.Context, inputs []Input, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]*Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := n.normalizeInput(in)
			if err != nil {
				return fmt.Errorf("normalizer: %s: %w", in.name(), err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	n.log().Debug("normalized batch", "documents", len(inputs), "workers", workers)
	return results, nil
}

func (n *Normalizer) normalizeInput(in Input) (*Result, error) {
	p := n.parser()
	if in.Data == nil {
		parsed, err := p.Parse(in.Path)
		if err != nil {
			return nil, err
		}
		return n.NormalizeParsed(parsed)
	}
	parsed, err := p.ParseBytes(in.Data)
	if err != nil {
		return nil, err
	}
	parsed.SourcePath = in.Path
	return n.NormalizeParsed(parsed)
}
