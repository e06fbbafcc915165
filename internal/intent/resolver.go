package intent

import "strings"

// Source identifies which layer produced an effective intent.
type Source string

const (
	SourceOverride Source = "override"
	SourceLearned  Source = "learned"
	SourceAI       Source = "ai"
	SourceAuto     Source = "auto"
)

// Resolution is the effective intent for a keyword plus its provenance.
type Resolution struct {
	Intent Intent `json:"intent"`
	Source Source `json:"source"`
}

// Resolve merges the override store, an externally computed AI
// classification, and the heuristic classifier into one effective
// intent. Precedence is strict and first-applicable-wins:
// exact override, then learned rules in insertion order, then the AI
// intent (keyed lower-case), then Classify.
func Resolve(keyword string, store *OverrideStore, opts ClassifyOptions, aiIntents map[string]Intent) Resolution {
	if store != nil {
		if in, ok := store.ExactOverrides[keyword]; ok {
			return Resolution{Intent: in, Source: SourceOverride}
		}

		tokens := Tokenize(keyword)
		for _, rule := range store.LearnedRules {
			if overlap(rule.Tokens, tokens) >= overlapThreshold(len(rule.Tokens)) {
				return Resolution{Intent: rule.Intent, Source: SourceLearned}
			}
		}
	}

	if in, ok := aiIntents[strings.ToLower(keyword)]; ok && in.Valid() {
		return Resolution{Intent: in, Source: SourceAI}
	}

	return Resolution{Intent: Classify(keyword, opts), Source: SourceAuto}
}
