package algo

import (
	"math"

	"github.com/huangsam/irmetrics/schema"
)

// StopProbability returns the probability that a simulated user stops at rank.
type StopProbability func(st *State, rank int) float64

// UniformStop stops at every relevant document with probability 1/R, where R is
// the judged relevant count, capped at cutoff when one is set.
func UniformStop(sc *Scale, cutoff int) StopProbability {
	pool := sc.JRelNum()
	if cutoff > 0 && cutoff < pool {
		pool = cutoff
	}
	p := 1 / float64(pool)
	return func(st *State, rank int) float64 {
		if st.IsRelevant(rank) {
			return p
		}
		return 0
	}
}

// GradedUniformStop stops at a level-l document with probability proportional to stops[l-1].
func GradedUniformStop(sc *Scale, stops []float64) StopProbability {
	norm := 0.0
	for level, num := range sc.XRelNum() {
		if level > 0 {
			norm += float64(num) * stops[level-1]
		}
	}
	return func(st *State, rank int) float64 {
		level := st.At(rank).Value()
		if level == 0 {
			return 0
		}
		return stops[level-1] / norm
	}
}

// RankBiasedStop decays the stop probability geometrically in the number of
// relevant documents seen so far.
func RankBiasedStop(sc *Scale, gamma float64) StopProbability {
	norm := 0.0
	for i := range sc.JRelNum() {
		norm += math.Pow(gamma, float64(i))
	}
	return func(st *State, rank int) float64 {
		if !st.IsRelevant(rank) {
			return 0
		}
		return math.Pow(gamma, float64(st.RelCount-1)) / norm
	}
}

// blendedRatio mixes relevant-count precision with grade-weighted precision.
func blendedRatio(sc *Scale, beta float64, st *State, rank int) float64 {
	return (float64(st.RelCount) + beta*st.CumGrade(sc, rank)) /
		(float64(rank) + beta*sc.IdealCumGrade(rank))
}

// NCU is normalised cumulative utility: blended-ratio gain weighted by a stop probability.
type NCU struct {
	label  string
	cutoff int
	scale  *Scale
	beta   float64
	stop   StopProbability
}

// NewNCU builds an NCU measure. A cutoff of 0 scores the whole list.
func NewNCU(label string, sc *Scale, beta float64, stop StopProbability, cutoff int) *NCU {
	return &NCU{label: label, cutoff: cutoff, scale: sc, beta: beta, stop: stop}
}

// Name returns the display name.
func (m *NCU) Name() string { return displayName(m.label, m.cutoff) }

// Cutoff returns the cutoff rank, or 0.
func (m *NCU) Cutoff() int { return m.cutoff }

// Gain returns the blended ratio at rank.
func (m *NCU) Gain(st *State, rank int) float64 {
	return blendedRatio(m.scale, m.beta, st, rank)
}

// Discount returns the stop probability at rank.
func (m *NCU) Discount(st *State, rank int) float64 {
	return m.stop(st, rank)
}

// NewAP returns Average Precision, NCU with beta 0 and uniform stops.
func NewAP(sc *Scale, cutoff int) Metric {
	return Plain(NewNCU(schema.APName, sc, 0, UniformStop(sc, cutoff), cutoff))
}

// NewQMeasure returns Q-measure, NCU with blended ratio and uniform stops.
// With a cutoff the name is reported as Q@NNNN.
func NewQMeasure(sc *Scale, beta float64, cutoff int) Metric {
	label := schema.QMeasureName
	if cutoff > 0 {
		label = schema.QCutoffName
	}
	return Plain(NewNCU(label, sc, beta, UniformStop(sc, cutoff), cutoff))
}

// NewNCUguP returns NCU with graded-uniform stops and precision utility.
func NewNCUguP(sc *Scale, stops []float64) Metric {
	return Plain(NewNCU(schema.NCUguPName, sc, 0, GradedUniformStop(sc, stops), 0))
}

// NewNCUguBR returns NCU with graded-uniform stops and blended-ratio utility.
func NewNCUguBR(sc *Scale, stops []float64, beta float64) Metric {
	return Plain(NewNCU(schema.NCUguBRName, sc, beta, GradedUniformStop(sc, stops), 0))
}

// NewNCUrbP returns NCU with rank-biased stops and precision utility.
func NewNCUrbP(sc *Scale, gamma float64) Metric {
	return Plain(NewNCU(schema.NCUrbPName, sc, 0, RankBiasedStop(sc, gamma), 0))
}

// NewNCUrbBR returns NCU with rank-biased stops and blended-ratio utility.
func NewNCUrbBR(sc *Scale, gamma, beta float64) Metric {
	return Plain(NewNCU(schema.NCUrbBRName, sc, beta, RankBiasedStop(sc, gamma), 0))
}
