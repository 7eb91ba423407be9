// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/protype/internal/model"
	"github.com/verte-zerg/protype/internal/store"
)

const trendWindow = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Record   model.StatsRecord
	Rounds   []model.RoundResult
	LowFloor int
}

// BuildReport loads rounds from the history store. A nil store yields a
// report with lifetime scores only.
func BuildReport(ctx context.Context, st *store.Store, rec model.StatsRecord, cfg model.HistoryConfig, lowFloor int) (Report, error) {
	report := Report{Record: rec, LowFloor: lowFloor}
	if st == nil {
		return report, nil
	}
	rounds, err := st.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	report.Rounds = rounds
	return report, nil
}

// Render writes the full report. width bounds the rounds table.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderLifetime(w, r.Record); err != nil {
		return err
	}
	if err := RenderSummary(w, r.Rounds, r.LowFloor); err != nil {
		return err
	}
	if err := RenderTrend(w, r.Rounds, trendWindow); err != nil {
		return err
	}
	return RenderRoundsTable(w, r.Rounds, width)
}
