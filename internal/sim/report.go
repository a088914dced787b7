package sim

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

var lang = language.English

// Summary aggregates a run.
type Summary struct {
	Games     int
	Won       int
	Exhausted int

	MeanScore float64
	StdScore  float64
	P10Score  float64
	P50Score  float64
	P90Score  float64

	MeanSwaps       float64
	PointsPerSwap   float64
	RevertRate      float64 // reverted / attempted swaps
	MeanSteps       float64 // cascade steps per kept swap
	MaxSteps        int
	GroupsPerSwap   float64
	BonusesPerGame  float64
	ShufflesPerGame float64
}

// Report is the outcome of Run.
type Report struct {
	Options Options
	Games   []GameResult
	Elapsed time.Duration
	Summary Summary
}

func newReport(opts Options, games []GameResult, elapsed time.Duration) *Report {
	return &Report{
		Options: opts,
		Games:   games,
		Elapsed: elapsed,
		Summary: summarize(games),
	}
}

func summarize(games []GameResult) Summary {
	s := Summary{Games: len(games)}
	if len(games) == 0 {
		return s
	}

	scores := make([]float64, 0, len(games))
	swaps := make([]float64, 0, len(games))
	var points []float64
	var reverted, kept, steps, groups, bonuses, shuffles int
	for _, g := range games {
		scores = append(scores, float64(g.Score))
		swaps = append(swaps, float64(g.Swaps))
		points = append(points, g.MovePoints...)
		reverted += g.Reverted
		kept += g.Swaps
		steps += g.Steps
		groups += g.Groups
		bonuses += g.Bonuses
		shuffles += g.Shuffles
		s.MaxSteps = max(s.MaxSteps, g.MaxSteps)
		if g.Won {
			s.Won++
		}
		if g.Exhausted {
			s.Exhausted++
		}
	}

	s.MeanScore, s.StdScore = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		s.StdScore = 0
	}
	slices.Sort(scores)
	s.P10Score = stat.Quantile(0.1, stat.Empirical, scores, nil)
	s.P50Score = stat.Quantile(0.5, stat.Empirical, scores, nil)
	s.P90Score = stat.Quantile(0.9, stat.Empirical, scores, nil)
	s.MeanSwaps = stat.Mean(swaps, nil)
	if len(points) > 0 {
		s.PointsPerSwap = stat.Mean(points, nil)
	}
	if attempts := kept + reverted; attempts > 0 {
		s.RevertRate = float64(reverted) / float64(attempts)
	}
	if kept > 0 {
		s.MeanSteps = float64(steps) / float64(kept)
		s.GroupsPerSwap = float64(groups) / float64(kept)
	}
	s.BonusesPerGame = float64(bonuses) / float64(len(games))
	s.ShufflesPerGame = float64(shuffles) / float64(len(games))
	return s
}

// WriteTo prints the report as a two-column table.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	p := message.NewPrinter(lang)
	s := r.Summary

	rows := [][2]string{
		{"Strategy", string(r.Options.Strategy)},
		{"Games", p.Sprintf("%d", s.Games)},
		{"Moves per game", p.Sprintf("%d", r.Options.Moves)},
		{"Seed", p.Sprintf("%d", r.Options.Seed)},
	}
	if r.Options.Target > 0 {
		rows = append(rows,
			[2]string{"Target", p.Sprintf("%d", r.Options.Target)},
			[2]string{"Won", p.Sprintf("%d (%.1f%%)", s.Won, pct(s.Won, s.Games))},
		)
	}
	rows = append(rows,
		[2]string{"Exhausted boards", p.Sprintf("%d (%.1f%%)", s.Exhausted, pct(s.Exhausted, s.Games))},
		[2]string{"Score mean", p.Sprintf("%.1f", s.MeanScore)},
		[2]string{"Score std", p.Sprintf("%.1f", s.StdScore)},
		[2]string{"Score p10/p50/p90", p.Sprintf("%.0f / %.0f / %.0f", s.P10Score, s.P50Score, s.P90Score)},
		[2]string{"Swaps per game", p.Sprintf("%.1f", s.MeanSwaps)},
		[2]string{"Points per swap", p.Sprintf("%.2f", s.PointsPerSwap)},
		[2]string{"Rejected swaps", p.Sprintf("%.1f%%", 100*s.RevertRate)},
		[2]string{"Cascade steps per swap", p.Sprintf("%.2f", s.MeanSteps)},
		[2]string{"Longest cascade", p.Sprintf("%d", s.MaxSteps)},
		[2]string{"Groups per swap", p.Sprintf("%.2f", s.GroupsPerSwap)},
		[2]string{"Bonuses per game", p.Sprintf("%.2f", s.BonusesPerGame)},
		[2]string{"Shuffles per game", p.Sprintf("%.2f", s.ShufflesPerGame)},
		[2]string{"Elapsed", r.Elapsed.Round(time.Millisecond).String()},
	)

	n, err := io.WriteString(w, table("Match-3 simulation", rows))
	return int64(n), err
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// table renders rows framed in ASCII, padding by display width.
func table(title string, rows [][2]string) string {
	keyW, valW := 0, 0
	for _, r := range rows {
		keyW = max(keyW, runewidth.StringWidth(r[0]))
		valW = max(valW, runewidth.StringWidth(r[1]))
	}
	keyW += 2
	valW += 2
	inner := keyW + 1 + valW
	if tw := runewidth.StringWidth(title) + 2; tw > inner {
		valW += tw - inner
		inner = tw
	}

	var b strings.Builder
	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	left := (inner - runewidth.StringWidth(title)) / 2
	b.WriteString(top)
	b.WriteString("|" + runewidth.FillRight(strings.Repeat(" ", left)+title, inner) + "|\n")
	b.WriteString(divider)
	for _, r := range rows {
		b.WriteString("| " + runewidth.FillRight(r[0], keyW-2) + " | " + runewidth.FillRight(r[1], valW-2) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}
