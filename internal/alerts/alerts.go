// Package alerts flags keyword ranking regressions by comparing the
// current position against three pre-aggregated historical snapshots.
package alerts

import "ranklens/internal/intent"

// Flag marks one kind of ranking regression.
type Flag string

const (
	// Fire: the keyword held a top-10 position historically and has
	// fallen out of the top 10.
	Fire Flag = "fire"
	// Smoking: the keyword held a top-5 position historically and has
	// fallen out of the top 5.
	Smoking Flag = "smoking"
	// Hot: the most recent snapshot window is worse than the one before
	// it, regardless of the current position.
	Hot Flag = "hot"
)

// Historical holds three independent snapshot position averages for a
// keyword, ordered oldest to newest. The window boundaries are defined
// by whatever supplies the snapshots; only the three numbers matter
// here. Nil means no data for that window.
type Historical struct {
	Period1 *float64
	Period2 *float64
	Period3 *float64
}

// Set is the zero-to-three regression flags raised for one keyword.
type Set map[Flag]bool

// Has reports whether f is raised.
func (s Set) Has(f Flag) bool { return s[f] }

// Flags returns the raised flags in a fixed fire, smoking, hot order.
func (s Set) Flags() []Flag {
	var out []Flag
	for _, f := range []Flag{Fire, Smoking, Hot} {
		if s[f] {
			out = append(out, f)
		}
	}
	return out
}

// actionable are the intents worth alerting on. Informational keywords
// move around constantly and produce noise, so they are gated out
// entirely.
var actionable = map[intent.Intent]bool{
	intent.Transactional:           true,
	intent.Product:                 true,
	intent.Local:                   true,
	intent.CompetitorTransactional: true,
}

// Compute evaluates the regression flags for one keyword. Keywords with
// a non-actionable effective intent or no current position always yield
// the empty set. The three flags are independent booleans.
func Compute(effective intent.Intent, currentPosition *float64, hist Historical) Set {
	set := make(Set)

	if !actionable[effective] || currentPosition == nil {
		return set
	}
	cur := *currentPosition

	best := bestHistorical(hist)
	if best != nil && *best <= 10 && cur > 10 {
		set[Fire] = true
	}
	if best != nil && *best <= 5 && cur > 5 {
		set[Smoking] = true
	}

	// Hot compares the two most recent windows only.
	if hist.Period2 != nil && hist.Period3 != nil && *hist.Period3 > *hist.Period2 {
		set[Hot] = true
	}

	return set
}

// bestHistorical returns the best (lowest) non-nil positive snapshot
// average, or nil when no window has usable data.
func bestHistorical(hist Historical) *float64 {
	var best *float64
	for _, p := range []*float64{hist.Period1, hist.Period2, hist.Period3} {
		if p == nil || *p <= 0 {
			continue
		}
		if best == nil || *p < *best {
			v := *p
			best = &v
		}
	}
	return best
}

// Counts aggregates per-flag totals across a set of keywords for the
// dashboard filter bar.
type Counts struct {
	Fire    int `json:"fire"`
	Smoking int `json:"smoking"`
	Hot     int `json:"hot"`
}

// Summarize tallies raised flags across all keywords.
func Summarize(sets map[string]Set) Counts {
	var c Counts
	for _, s := range sets {
		if s[Fire] {
			c.Fire++
		}
		if s[Smoking] {
			c.Smoking++
		}
		if s[Hot] {
			c.Hot++
		}
	}
	return c
}
