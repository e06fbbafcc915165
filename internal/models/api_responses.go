package models

// KeywordCheckResponse is returned by the keyword availability endpoint.
type KeywordCheckResponse struct {
	Available bool `json:"available"`
}

// KeywordView is one dashboard row: the keyword's metrics plus the
// derived intelligence (effective intent with provenance and raised
// alert flags).
type KeywordView struct {
	Keyword      Keyword  `json:"keyword"`
	Intent       string   `json:"intent"`
	IntentSource string   `json:"intent_source"` // override, learned, ai, auto
	Alerts       []string `json:"alerts"`        // fire, smoking, hot
	Value        int      `json:"value"`
}

// OverrideResponse reports the result of recording an intent override.
type OverrideResponse struct {
	Keyword  string            `json:"keyword"`
	Intent   string            `json:"intent"`
	Affected map[string]string `json:"affected"` // propagated keyword -> intent
}
