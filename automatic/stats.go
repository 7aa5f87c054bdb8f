package automatic

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/stig/Moth/board"
	"github.com/stig/Moth/stats"
)

const (
	histogramWidth     = 40
	confidenceInterval = 95
)

type Stats struct {
	Variant string
	Results []GameResult
}

func NewStats(variant string, results []GameResult) *Stats {
	return &Stats{Variant: variant, Results: results}
}

func (s *Stats) Games() int { return len(s.Results) }

// Wins counts the games p won. Wins(board.Empty) is the number of draws.
func (s *Stats) Wins(p board.Cell) int {
	return lo.CountBy(s.Results, func(r GameResult) bool { return r.Winner == p })
}

// ByWinner returns the games that ended with the given winner.
func (s *Stats) ByWinner(p board.Cell) []GameResult {
	return lo.Filter(s.Results, func(r GameResult, _ int) bool { return r.Winner == p })
}

func meanPlies(results []GameResult) float64 {
	if len(results) == 0 {
		return 0
	}
	return float64(lo.SumBy(results, func(r GameResult) int { return r.Plies })) /
		float64(len(results))
}

// MeanLength is the average number of plies, passes included.
func (s *Stats) MeanLength() float64 { return meanPlies(s.Results) }

func (s *Stats) Passes() int {
	return lo.SumBy(s.Results, func(r GameResult) int { return r.Passes })
}

// Lengths returns the running statistic over game lengths.
func (s *Stats) Lengths() *stats.Statistic {
	st := &stats.Statistic{}
	for _, r := range s.Results {
		st.Push(float64(r.Plies))
	}
	return st
}

// Histogram buckets the game lengths.
func (s *Stats) Histogram(bins int) histogram.Histogram {
	lengths := lo.Map(s.Results, func(r GameResult, _ int) float64 { return float64(r.Plies) })
	return histogram.Hist(bins, lengths)
}

// Fprint writes a summary followed by a histogram of game lengths.
func (s *Stats) Fprint(w io.Writer, bins int) error {
	if bins < 1 {
		return fmt.Errorf("need at least one histogram bin, got %d", bins)
	}
	fmt.Fprintf(w, "Variant: %s\n", s.Variant)
	fmt.Fprintf(w, "Games: %d\n", s.Games())
	if s.Games() == 0 {
		return nil
	}
	for _, p := range []board.Cell{board.Player1, board.Player2} {
		n := s.Wins(p)
		rate, margin := stats.Proportion(n, s.Games(), confidenceInterval)
		fmt.Fprintf(w, "%-10s %6d (%.1f%% ± %.1f%%), mean length %.2f\n", p.String()+":", n,
			100*rate, 100*margin, meanPlies(s.ByWinner(p)))
	}
	fmt.Fprintf(w, "%-10s %6d\n", "draws:", s.Wins(board.Empty))
	lengths := s.Lengths()
	fmt.Fprintf(w, "Mean length: %.2f plies (stdev %.2f), %d passes\n",
		s.MeanLength(), lengths.Stdev(), s.Passes())
	fmt.Fprintln(w)
	return histogram.Fprint(w, s.Histogram(bins), histogram.Linear(histogramWidth))
}
