package algo

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Measure is a gain/discount specialization scored by Score.
// Implementations hold only configuration; everything derived from the
// ranked list lives in the State passed to each call.
type Measure interface {
	Name() string
	Cutoff() int
	Gain(st *State, rank int) float64
	Discount(st *State, rank int) float64
}

// Metric computes one effectiveness score for a labelled ranked list.
type Metric interface {
	Name() string
	Compute(list RankedList) float64
}

// State is the per-call scratch data of one scoring pass.
type State struct {
	List     RankedList
	Len      int
	RelCount int // relevant documents at or before the current rank
	FirstRel int // 0 when no relevant document appears
	FirstMax int // 0 when no relevant document appears
	MaxPool  int // relevant documents at ranks 1..FirstMax

	survival  float64 // product of (1 - gain) over earlier ranks
	gainSeen  bool    // some earlier rank had a non-zero gain
	cumGrades []float64
}

func newState(list RankedList) *State {
	st := &State{
		List:     list,
		Len:      len(list),
		FirstRel: FirstRelRank(list),
		FirstMax: FirstMaxRank(list),
		survival: 1,
	}
	for _, d := range list[:st.FirstMax] {
		if d.Grade.IsRelevant() {
			st.MaxPool++
		}
	}
	return st
}

// At returns the grade at a 1-based rank.
func (st *State) At(rank int) Grade {
	return st.List[rank-1].Grade
}

// IsRelevant reports whether the document at rank is relevant.
func (st *State) IsRelevant(rank int) bool {
	return st.At(rank).IsRelevant()
}

// CumGrade returns the sum of gain values over ranks 1..rank.
func (st *State) CumGrade(sc *Scale, rank int) float64 {
	if st.cumGrades == nil {
		gains := make([]float64, st.Len)
		for i, d := range st.List {
			gains[i] = sc.GainOf(d.Grade)
		}
		st.cumGrades = floats.CumSum(make([]float64, st.Len), gains)
	}
	if rank <= 0 || st.Len == 0 {
		return 0
	}
	if rank > st.Len {
		rank = st.Len
	}
	return st.cumGrades[rank-1]
}

// Survival returns the product of (1 - gain) over the previous ranks.
func (st *State) Survival() float64 { return st.survival }

// GainSeen reports whether any previous rank had a non-zero gain.
func (st *State) GainSeen() bool { return st.gainSeen }

// advance folds the gain of the current rank into the running state.
func (st *State) advance(g float64) {
	st.survival *= 1 - g
	if g != 0 {
		st.gainSeen = true
	}
}

// Score runs a single left-to-right pass over list and returns the sum of
// gain*discount, stopping after the measure's cutoff rank when one is set.
func Score(m Measure, list RankedList) float64 {
	st := newState(list)
	cutoff := m.Cutoff()
	result := 0.0
	for i := range list {
		rank := i + 1
		if st.IsRelevant(rank) {
			st.RelCount++
		}
		g := m.Gain(st, rank)
		result += g * m.Discount(st, rank)
		st.advance(g)
		if cutoff > 0 && rank >= cutoff {
			break
		}
	}
	return result
}

// FirstRelRank returns the rank of the first relevant document, or 0.
func FirstRelRank(list RankedList) int {
	for i, d := range list {
		if d.Grade.IsRelevant() {
			return i + 1
		}
	}
	return 0
}

// FirstMaxRank returns the rank of the first document at the highest level in the list, or 0.
func FirstMaxRank(list RankedList) int {
	maxLevel := list.MaxLevel()
	if maxLevel == 0 {
		return 0
	}
	for i, d := range list {
		if d.Grade.Value() == maxLevel {
			return i + 1
		}
	}
	return 0
}

// displayName appends the four digit cutoff suffix used in reports.
func displayName(label string, cutoff int) string {
	if cutoff > 0 {
		return fmt.Sprintf("%s@%04d", label, cutoff)
	}
	return label
}

// plain adapts a Measure to the Metric interface.
type plain struct {
	Measure
}

func (p plain) Compute(list RankedList) float64 {
	return Score(p.Measure, list)
}

// Plain returns a Metric that scores with m directly.
func Plain(m Measure) Metric {
	return plain{m}
}
