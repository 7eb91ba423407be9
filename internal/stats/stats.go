// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/protype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a list of rounds.
type Summary struct {
	Rounds      int
	AvgWPM      float64
	BestWPM     int
	LowestWPM   int
	AvgDuration time.Duration
}

// Summarize computes a Summary. LowestWPM only considers rounds faster than lowFloor.
func Summarize(rounds []model.RoundResult, lowFloor int) Summary {
	if len(rounds) == 0 {
		return Summary{}
	}
	var totalWPM float64
	var totalMs int64
	sum := Summary{Rounds: len(rounds)}
	for _, r := range rounds {
		totalWPM += float64(r.WPM)
		totalMs += r.DurationMs
		if r.WPM > sum.BestWPM {
			sum.BestWPM = r.WPM
		}
		if r.WPM > lowFloor && (sum.LowestWPM == 0 || r.WPM < sum.LowestWPM) {
			sum.LowestWPM = r.WPM
		}
	}
	count := float64(len(rounds))
	sum.AvgWPM = totalWPM / count
	sum.AvgDuration = time.Duration(float64(totalMs)/count) * time.Millisecond
	return sum
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderLifetime prints the persisted best and low scores.
func RenderLifetime(w io.Writer, rec model.StatsRecord) error {
	if _, err := fmt.Fprintln(w, "Lifetime"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best: %d WPM\n", rec.HighScore); err != nil {
		return err
	}
	low := "-"
	if rec.LowScore > 0 {
		low = fmt.Sprintf("%d WPM", rec.LowScore)
	}
	if _, err := fmt.Fprintf(w, "Low: %s\n\n", low); err != nil {
		return err
	}
	return nil
}

// RenderSummary prints a summary block for rounds.
func RenderSummary(w io.Writer, rounds []model.RoundResult, lowFloor int) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	sum := Summarize(rounds, lowFloor)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", sum.Rounds),
		fmt.Sprintf("Avg WPM: %.2f", sum.AvgWPM),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Lowest WPM: %d", sum.LowestWPM),
		fmt.Sprintf("Avg Time: %.1fs", sum.AvgDuration.Seconds()),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints a sparkline of WPM with its moving average.
func RenderTrend(w io.Writer, rounds []model.RoundResult, window int) error {
	if len(rounds) < 2 {
		return nil
	}
	wpms := make([]float64, len(rounds))
	for i, r := range rounds {
		wpms[i] = float64(r.WPM)
	}
	if _, err := fmt.Fprintln(w, "Trend"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "WPM  |%s|\n", Sparkline(wpms)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg%d |%s|\n\n", window, Sparkline(MovingAverage(wpms, window))); err != nil {
		return err
	}
	return nil
}

// RenderRoundsTable prints one row per round. Targets are truncated so rows
// fit in width; a width <= 0 disables truncation.
func RenderRoundsTable(w io.Writer, rounds []model.RoundResult, width int) error {
	if len(rounds) == 0 {
		return nil
	}
	headers := []string{"Ended", "WPM", "Time", "Best", "Target"}
	rows := make([][]string, 0, len(rounds))
	for _, r := range rounds {
		best := ""
		if r.NewHigh {
			best = "*"
		}
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
			best,
			r.Target,
		})
	}
	if width > 0 {
		fixed := fixedColumnsWidth(headers, rows, len(headers)-1)
		for _, row := range rows {
			row[len(row)-1] = truncate(row[len(row)-1], width-fixed)
		}
	}
	if _, err := fmt.Fprintln(w, "Rounds"); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
