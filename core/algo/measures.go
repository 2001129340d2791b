package algo

import (
	"math"

	"github.com/huangsam/irmetrics/schema"
)

// base carries the name and cutoff shared by every measure.
type base struct {
	label  string
	cutoff int
}

func (b base) Name() string { return displayName(b.label, b.cutoff) }

func (b base) Cutoff() int { return b.cutoff }

// firstRelOnly is the discount of metrics that only score the first relevant rank.
func firstRelOnly(st *State, rank int) float64 {
	if rank == st.FirstRel {
		return 1
	}
	return 0
}

type rr struct{ base }

// NewRR returns reciprocal rank.
func NewRR() Metric {
	return Plain(rr{base{label: schema.RRName}})
}

func (rr) Gain(_ *State, rank int) float64 { return 1 / float64(rank) }

func (rr) Discount(st *State, rank int) float64 { return firstRelOnly(st, rank) }

type oMeasure struct {
	base
	scale *Scale
	beta  float64
}

// NewOMeasure returns the O-measure, a graded variant of reciprocal rank.
func NewOMeasure(sc *Scale, beta float64) Metric {
	return Plain(oMeasure{base: base{label: schema.OMeasureName}, scale: sc, beta: beta})
}

func (m oMeasure) Gain(st *State, rank int) float64 {
	return (1 + m.beta*m.scale.GradeAt(st, rank)) /
		(float64(rank) + m.beta*m.scale.IdealCumGrade(rank))
}

func (oMeasure) Discount(st *State, rank int) float64 { return firstRelOnly(st, rank) }

type pMeasure struct {
	base
	scale *Scale
	beta  float64
}

// NewPMeasure returns the P-measure: blended ratio at the first max-level rank.
func NewPMeasure(sc *Scale, beta float64) Metric {
	return Plain(pMeasure{base: base{label: schema.PMeasureName}, scale: sc, beta: beta})
}

func (m pMeasure) Gain(st *State, rank int) float64 {
	return blendedRatio(m.scale, m.beta, st, rank)
}

func (pMeasure) Discount(st *State, rank int) float64 {
	if rank == st.FirstMax {
		return 1
	}
	return 0
}

type pPlus struct {
	base
	scale *Scale
	beta  float64
}

// NewPPlus returns P-plus: blended ratio averaged over relevant ranks up to the first max-level rank.
func NewPPlus(sc *Scale, beta float64) Metric {
	return Plain(pPlus{base: base{label: schema.PPlusName}, scale: sc, beta: beta})
}

func (m pPlus) Gain(st *State, rank int) float64 {
	return blendedRatio(m.scale, m.beta, st, rank)
}

func (pPlus) Discount(st *State, rank int) float64 {
	if st.FirstMax == 0 || rank > st.FirstMax || !st.IsRelevant(rank) {
		return 0
	}
	return 1 / float64(st.MaxPool)
}

type rbp struct {
	base
	scale       *Scale
	persistence float64
}

// NewRBP returns rank-biased precision with the given persistence.
func NewRBP(sc *Scale, persistence float64) Metric {
	return Plain(rbp{base: base{label: schema.RBPName}, scale: sc, persistence: persistence})
}

func (m rbp) Gain(st *State, rank int) float64 { return m.scale.RBPGradeAt(st, rank) }

func (m rbp) Discount(_ *State, rank int) float64 {
	return (1 - m.persistence) * math.Pow(m.persistence, float64(rank-1))
}

type expectedRR struct {
	base
	scale *Scale
}

func (m expectedRR) Gain(st *State, rank int) float64 { return m.scale.ERRGradeAt(st, rank) }

func (expectedRR) Discount(st *State, rank int) float64 {
	return st.Survival() / float64(rank)
}

// NewERR returns expected reciprocal rank.
func NewERR(sc *Scale) Metric {
	return Plain(expectedRR{base: base{label: schema.ERRName}, scale: sc})
}

// NewNERR returns ERR at cutoff normalized by the ideal list.
func NewNERR(sc *Scale, cutoff int) Metric {
	return Normalize(expectedRR{base: base{label: schema.NERRName, cutoff: cutoff}, scale: sc}, sc)
}

type ndcg struct {
	base
	scale *Scale
	logb  float64
}

// NewNDCG returns the original Jarvelin/Kekalainen nDCG. Discounting starts at
// rank logb; a logb of 0 selects the natural log.
func NewNDCG(sc *Scale, logb float64, cutoff int) Metric {
	if logb == 0 {
		logb = math.E
	}
	return Normalize(ndcg{base: base{label: schema.NDCGName, cutoff: cutoff}, scale: sc, logb: logb}, sc)
}

func (m ndcg) Gain(st *State, rank int) float64 { return m.scale.GradeAt(st, rank) }

func (m ndcg) Discount(_ *State, rank int) float64 {
	r := float64(rank)
	if rank == 1 || r < m.logb {
		return 1
	}
	return math.Log(m.logb) / math.Log(r)
}

type msndcg struct {
	base
	scale *Scale
}

// NewMSNDCG returns the Burges et al. nDCG with a 1/ln(rank+1) discount.
func NewMSNDCG(sc *Scale, cutoff int) Metric {
	return Normalize(msndcg{base: base{label: schema.MSNDCGName, cutoff: cutoff}, scale: sc}, sc)
}

func (m msndcg) Gain(st *State, rank int) float64 { return m.scale.GradeAt(st, rank) }

func (msndcg) Discount(_ *State, rank int) float64 {
	return 1 / math.Log(float64(rank+1))
}

// binaryGain is 1 for a relevant document.
func binaryGain(st *State, rank int) float64 {
	if st.IsRelevant(rank) {
		return 1
	}
	return 0
}

type precision struct{ base }

// NewPrecision returns precision at cutoff.
func NewPrecision(cutoff int) Metric {
	return Plain(precision{base{label: schema.PrecisionName, cutoff: cutoff}})
}

func (precision) Gain(st *State, rank int) float64 { return binaryGain(st, rank) }

func (p precision) Discount(_ *State, _ int) float64 { return 1 / float64(p.cutoff) }

type hit struct{ base }

// NewHit returns Hit at cutoff: 1 when a relevant document appears by the cutoff.
func NewHit(cutoff int) Metric {
	return Plain(hit{base{label: schema.HitName, cutoff: cutoff}})
}

func (hit) Gain(st *State, rank int) float64 { return binaryGain(st, rank) }

// Discount is 1 while every earlier gain is 0, so only the first relevant rank counts.
func (hit) Discount(st *State, _ int) float64 {
	if st.GainSeen() {
		return 0
	}
	return 1
}

// Recall sums the levels of retrieved relevant documents over the judged relevant count.
// It is a whole-list ratio and has no cutoff.
type Recall struct {
	jrelnum int
}

// NewRecall returns recall for a judgment set with the given level counts.
func NewRecall(xrelnum []int) *Recall {
	r := &Recall{}
	for level, n := range xrelnum {
		if level > 0 {
			r.jrelnum += n
		}
	}
	return r
}

// Name returns the display name.
func (*Recall) Name() string { return schema.RecallName }

// Compute returns the recall of list.
func (r *Recall) Compute(list RankedList) float64 {
	retrieved := 0
	for _, d := range list {
		if d.Grade.IsRelevant() {
			retrieved += d.Grade.Level
		}
	}
	if retrieved == 0 {
		return 0
	}
	return float64(retrieved) / float64(r.jrelnum)
}
