package intent

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{"simple", "Best Running Shoes", []string{"best", "running", "shoes"}},
		{"drops stopwords", "best running shoes for men", []string{"best", "running", "shoes", "men"}},
		{"drops short tokens", "vitamin c b d serum", []string{"vitamin", "serum"}},
		{"all stopwords", "to the and", nil},
		{"empty", "", nil},
		{"extra whitespace", "  best   shoes  ", []string{"best", "shoes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.keyword)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestOverlapThreshold(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{6, 3},
	}

	for _, tt := range tests {
		if got := overlapThreshold(tt.n); got != tt.want {
			t.Errorf("overlapThreshold(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestRecordOverridePropagates(t *testing.T) {
	store := NewOverrideStore()
	site := []string{
		"best running shoes",
		"best running shoes for men",  // shares best, running, shoes
		"running shoes",               // shares 2 of 3
		"best hiking boots",           // shares only "best"
		"trail gear",                  // shares nothing
	}

	affected := store.RecordOverride("best running shoes", Transactional, site)

	want := map[string]Intent{
		"best running shoes for men": Transactional,
		"running shoes":              Transactional,
	}
	if !reflect.DeepEqual(affected, want) {
		t.Errorf("affected = %v, want %v", affected, want)
	}

	if got := store.ExactOverrides["best running shoes"]; got != Transactional {
		t.Errorf("override not recorded, got %v", got)
	}
	if got := store.ExactOverrides["best hiking boots"]; got != "" {
		t.Errorf("below-threshold keyword propagated: %v", got)
	}
	if len(store.LearnedRules) != 1 {
		t.Fatalf("expected 1 learned rule, got %d", len(store.LearnedRules))
	}
	rule := store.LearnedRules[0]
	if rule.Source != "best running shoes" || rule.Intent != Transactional {
		t.Errorf("unexpected rule: %+v", rule)
	}
}

// A candidate sharing exactly floor(n/2) tokens of an odd-length rule
// must not propagate; ceil(n/2) must.
func TestRecordOverrideThresholdBoundary(t *testing.T) {
	store := NewOverrideStore()
	// Rule tokens: alpha, beta, gamma (n=3, threshold=2).
	affected := store.RecordOverride("alpha beta gamma", Product, []string{
		"alpha delta epsilon", // overlap 1 = floor(3/2): not propagated
		"alpha beta zeta",     // overlap 2 = ceil(3/2): propagated
	})

	if _, ok := affected["alpha delta epsilon"]; ok {
		t.Error("floor(n/2) overlap was propagated")
	}
	if affected["alpha beta zeta"] != Product {
		t.Error("ceil(n/2) overlap was not propagated")
	}
}

func TestRecordOverrideSkipsExistingOverrides(t *testing.T) {
	store := NewOverrideStore()
	store.ExactOverrides["best running shoes for men"] = Navigational

	affected := store.RecordOverride("best running shoes", Transactional, []string{
		"best running shoes for men",
	})

	if len(affected) != 0 {
		t.Errorf("propagation touched a keyword with an explicit override: %v", affected)
	}
	if store.ExactOverrides["best running shoes for men"] != Navigational {
		t.Error("existing override was overwritten")
	}
}

func TestRecordOverrideReplacesSameSourceRule(t *testing.T) {
	store := NewOverrideStore()
	store.RecordOverride("best running shoes", Product, nil)
	store.RecordOverride("trail running gear", Educational, nil)
	store.RecordOverride("best running shoes", Transactional, nil)

	if len(store.LearnedRules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(store.LearnedRules))
	}
	// The replaced rule moves to the end; insertion order otherwise holds.
	if store.LearnedRules[0].Source != "trail running gear" {
		t.Errorf("rule order changed: %+v", store.LearnedRules)
	}
	last := store.LearnedRules[1]
	if last.Source != "best running shoes" || last.Intent != Transactional {
		t.Errorf("rule was not replaced: %+v", last)
	}
}

func TestRecordOverrideStopwordOnlyKeyword(t *testing.T) {
	store := NewOverrideStore()
	affected := store.RecordOverride("to the", Local, []string{"to the store"})

	if len(affected) != 0 {
		t.Errorf("expected no propagation, got %v", affected)
	}
	if len(store.LearnedRules) != 0 {
		t.Errorf("expected no learned rule, got %+v", store.LearnedRules)
	}
	if store.ExactOverrides["to the"] != Local {
		t.Error("exact override should still be recorded")
	}
}

// The persisted shape is a stable contract: exactOverrides as an object
// and learnedRules as an ordered array.
func TestOverrideStoreJSONRoundTrip(t *testing.T) {
	store := NewOverrideStore()
	store.RecordOverride("best running shoes", Transactional, nil)

	data, err := json.Marshal(store)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var loaded OverrideStore
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(&loaded, store) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", &loaded, store)
	}
}
