// Package ranking turns per-keyword audit checklists into one globally
// ordered recommendation list, resolving conflicts between keywords
// that target the same page.
package ranking

// Score converts a keyword's position and monthly search volume into a
// single comparable value in [0, 150]. The value is ordinal only — it
// exists to break ties between competing recommendations and carries no
// meaning outside that comparison. Nil inputs contribute zero.
func Score(position, volume *float64) int {
	return positionScore(position) + volumeScore(volume)
}

func positionScore(position *float64) int {
	if position == nil {
		return 0
	}
	p := *position
	switch {
	case p <= 3:
		return 100
	case p <= 10:
		return 70
	case p <= 20:
		return 40
	case p <= 50:
		return 20
	default:
		return 5
	}
}

func volumeScore(volume *float64) int {
	if volume == nil {
		return 0
	}
	v := *volume
	switch {
	case v >= 10000:
		return 50
	case v >= 5000:
		return 40
	case v >= 1000:
		return 30
	case v >= 500:
		return 20
	case v >= 100:
		return 10
	case v > 0:
		return 5
	default:
		return 0
	}
}
