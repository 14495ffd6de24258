package recommend

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/greenprocure/internal/scoring"
	"github.com/rshade/greenprocure/internal/supplier"
)

// PoolScore is one supplier's overall score.
type PoolScore struct {
	SupplierID   string         `json:"supplierId"`
	SupplierName string         `json:"supplierName"`
	Score        scoring.Result `json:"score"`
}

// ScorePool computes overall scores for suppliers concurrently, bounded by
// the engine's parallelism. Results are in input order. A nil weights uses the
// benchmark defaults. It returns ctx.Err() if ctx is done before every
// supplier is scored.
func (e *Engine) ScorePool(ctx context.Context, suppliers []supplier.Supplier, weights *scoring.Weights) ([]PoolScore, error) {
	start := time.Now()
	out := make([]PoolScore, len(suppliers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i := range suppliers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s := suppliers[i]
			out[i] = PoolScore{
				SupplierID:   s.ID,
				SupplierName: s.Name,
				Score:        e.scorer.OverallScore(s, weights),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("operation", "ScorePool").
		Int("suppliers", len(suppliers)).
		Int("parallelism", e.parallelism).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("pool scored")
	return out, nil
}
