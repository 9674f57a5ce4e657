package analysis

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-pathway/internal/report"
	"github.com/jonathan/career-pathway/internal/types"
)

// NormalizedDocument is the outcome of normalizing one document of a batch.
type NormalizedDocument struct {
	Report  types.NormalizedReport `json:"report"`
	Defects report.Diagnostics     `json:"defects"`
}

// NormalizeBatch normalizes docs concurrently. Output order matches input order. Malformed
// documents are not errors; only cancellation of ctx is.
func (s *Service) NormalizeBatch(ctx context.Context, docs [][]byte) ([]NormalizedDocument, error) {
	out := make([]NormalizedDocument, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rep, defects := report.NormalizeJSONWithDiagnostics(doc)
			if defects == nil {
				defects = report.Diagnostics{}
			}
			s.metrics.ObserveReport(defects)
			// Each goroutine owns its own index
			out[i] = NormalizedDocument{Report: rep, Defects: defects}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.log.Debug("normalized batch", "documents", len(docs))
	return out, nil
}
