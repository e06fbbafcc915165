package intent

import (
	"strings"
)

// LearnedRule generalizes one user override into a token pattern that
// auto-classifies textually similar keywords. Source is the keyword the
// rule was learned from; a store holds at most one rule per source.
type LearnedRule struct {
	Tokens []string `json:"tokens"`
	Intent Intent   `json:"intent"`
	Source string   `json:"source"`
}

// OverrideStore holds a site's explicit intent corrections and the rules
// learned from them. It is a plain value: callers pass it in, get the
// mutated store back, and own persistence and locking around the write.
// Rule order matters — learned rules match first-wins in insertion order.
type OverrideStore struct {
	ExactOverrides map[string]Intent `json:"exactOverrides"`
	LearnedRules   []LearnedRule     `json:"learnedRules"`
}

// NewOverrideStore returns an empty store ready for use.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{ExactOverrides: make(map[string]Intent)}
}

// stopwords excluded from rule tokens. Short connective words carry no
// classification signal and would inflate overlap counts.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "for": {}, "of": {},
	"to": {}, "in": {}, "on": {}, "at": {}, "by": {}, "with": {}, "from": {},
	"is": {}, "are": {}, "was": {}, "be": {}, "it": {}, "my": {}, "your": {},
}

// Tokenize lowercases a keyword, splits it on whitespace, and drops
// tokens shorter than two characters or in the stop-word set.
func Tokenize(keyword string) []string {
	var tokens []string
	for _, t := range strings.Fields(strings.ToLower(keyword)) {
		if len(t) < 2 {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// overlapThreshold is the minimum shared-token count for a rule with n
// tokens to apply: max(1, ceil(n/2)).
func overlapThreshold(n int) int {
	t := (n + 1) / 2
	if t < 1 {
		t = 1
	}
	return t
}

// overlap counts how many rule tokens appear in the candidate token set.
func overlap(ruleTokens, candidate []string) int {
	set := make(map[string]struct{}, len(candidate))
	for _, t := range candidate {
		set[t] = struct{}{}
	}
	n := 0
	for _, t := range ruleTokens {
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

// RecordOverride records an explicit user correction for keyword,
// learns a token rule from it, and propagates the new intent to similar
// site keywords in one batch. A keyword already holding an exact
// override is never touched by propagation. Returns the keywords the
// propagation affected, mapped to their new intent.
//
// This is a one-shot operation at the moment of the override: later
// overrides on other keywords do not retroactively re-propagate.
func (s *OverrideStore) RecordOverride(keyword string, in Intent, siteKeywords []string) map[string]Intent {
	if s.ExactOverrides == nil {
		s.ExactOverrides = make(map[string]Intent)
	}
	s.ExactOverrides[keyword] = in

	affected := make(map[string]Intent)

	tokens := Tokenize(keyword)
	if len(tokens) == 0 {
		return affected
	}

	// A new override from the same keyword replaces its prior rule.
	rules := s.LearnedRules[:0]
	for _, r := range s.LearnedRules {
		if r.Source != keyword {
			rules = append(rules, r)
		}
	}
	s.LearnedRules = append(rules, LearnedRule{Tokens: tokens, Intent: in, Source: keyword})

	threshold := overlapThreshold(len(tokens))
	for _, kw := range siteKeywords {
		if kw == keyword {
			continue
		}
		if _, has := s.ExactOverrides[kw]; has {
			continue
		}
		if overlap(tokens, Tokenize(kw)) >= threshold {
			s.ExactOverrides[kw] = in
			affected[kw] = in
		}
	}

	return affected
}
