package alerts

import (
	"testing"

	"ranklens/internal/intent"
)

func f(v float64) *float64 { return &v }

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		intent   intent.Intent
		position *float64
		hist     Historical
		want     []Flag
	}{
		{
			name:     "fire and smoking together",
			intent:   intent.Transactional,
			position: f(12),
			hist:     Historical{Period1: f(4), Period2: f(8), Period3: f(7)},
			want:     []Flag{Fire, Smoking},
		},
		{
			name:     "fire only",
			intent:   intent.Product,
			position: f(12),
			hist:     Historical{Period1: f(8)},
			want:     []Flag{Fire},
		},
		{
			name:     "smoking only when still top ten",
			intent:   intent.Transactional,
			position: f(7),
			hist:     Historical{Period1: f(3)},
			want:     []Flag{Smoking},
		},
		{
			name:     "hot independent of current position",
			intent:   intent.Local,
			position: f(2),
			hist:     Historical{Period2: f(5), Period3: f(9)},
			want:     []Flag{Hot},
		},
		{
			name:     "all three",
			intent:   intent.CompetitorTransactional,
			position: f(15),
			hist:     Historical{Period1: f(3), Period2: f(6), Period3: f(11)},
			want:     []Flag{Fire, Smoking, Hot},
		},
		{
			name:     "educational gated out regardless of movement",
			intent:   intent.Educational,
			position: f(40),
			hist:     Historical{Period1: f(1), Period2: f(2), Period3: f(30)},
			want:     nil,
		},
		{
			name:     "navigational gated out",
			intent:   intent.Navigational,
			position: f(40),
			hist:     Historical{Period1: f(1)},
			want:     nil,
		},
		{
			name:     "branded gated out",
			intent:   intent.Branded,
			position: f(40),
			hist:     Historical{Period1: f(1)},
			want:     nil,
		},
		{
			name:   "nil current position",
			intent: intent.Transactional,
			hist:   Historical{Period1: f(1), Period2: f(2), Period3: f(30)},
			want:   nil,
		},
		{
			name:     "no history no fire",
			intent:   intent.Transactional,
			position: f(50),
			hist:     Historical{},
			want:     nil,
		},
		{
			name:     "zero and negative snapshots ignored",
			intent:   intent.Transactional,
			position: f(12),
			hist:     Historical{Period1: f(0), Period2: f(-3)},
			want:     nil,
		},
		{
			name:     "hot needs both recent windows",
			intent:   intent.Transactional,
			position: f(2),
			hist:     Historical{Period3: f(9)},
			want:     nil,
		},
		{
			name:     "improving recent windows not hot",
			intent:   intent.Transactional,
			position: f(2),
			hist:     Historical{Period2: f(9), Period3: f(5)},
			want:     nil,
		},
		{
			name:     "boundary: best exactly ten, position exactly ten",
			intent:   intent.Transactional,
			position: f(10),
			hist:     Historical{Period1: f(10)},
			want:     nil,
		},
		{
			name:     "boundary: best exactly ten, position eleven",
			intent:   intent.Transactional,
			position: f(11),
			hist:     Historical{Period1: f(10)},
			want:     []Flag{Fire},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.intent, tt.position, tt.hist)
			if len(got.Flags()) != len(tt.want) {
				t.Fatalf("Compute() flags = %v, want %v", got.Flags(), tt.want)
			}
			for _, fl := range tt.want {
				if !got.Has(fl) {
					t.Errorf("Compute() missing flag %v (got %v)", fl, got.Flags())
				}
			}
		})
	}
}

// Whenever smoking is raised, the fire precondition on history holds as
// well, but fire itself still needs the current position below ten.
func TestSmokingImpliesFirePrecondition(t *testing.T) {
	set := Compute(intent.Transactional, f(7), Historical{Period1: f(3)})
	if !set.Has(Smoking) {
		t.Fatal("expected smoking")
	}
	if set.Has(Fire) {
		t.Error("fire must not be raised while position is still top ten")
	}

	set = Compute(intent.Transactional, f(12), Historical{Period1: f(3)})
	if !set.Has(Smoking) || !set.Has(Fire) {
		t.Errorf("expected both fire and smoking, got %v", set.Flags())
	}
}

func TestSummarize(t *testing.T) {
	sets := map[string]Set{
		"a": {Fire: true, Smoking: true},
		"b": {Hot: true},
		"c": {},
		"d": {Fire: true, Hot: true},
	}

	got := Summarize(sets)
	want := Counts{Fire: 2, Smoking: 1, Hot: 2}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}
