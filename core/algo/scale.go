package algo

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Scale holds the gain value of each relevance level and the judged document
// count at each level. Derived ideal data is built once at construction.
type Scale struct {
	grades   []float64
	xrelnum  []int
	jrelnum  int
	maxGrade float64
	ideal    []float64
	idealCum []float64
}

// NewScale builds a scale. grades[i] is the gain of level i+1 and
// xrelnum[l] is the judged count at level l, so every level above 0 in
// xrelnum needs a gain value.
func NewScale(grades []float64, xrelnum []int) (*Scale, error) {
	if len(grades) == 0 {
		return nil, fmt.Errorf("%w: at least one relevance level is required", ErrInvalidConfig)
	}
	if len(xrelnum) == 0 || len(xrelnum)-1 > len(grades) {
		return nil, fmt.Errorf("%w: %d level counts for %d grades", ErrInvalidConfig, len(xrelnum), len(grades))
	}
	sc := &Scale{
		grades:   slices.Clone(grades),
		xrelnum:  slices.Clone(xrelnum),
		maxGrade: floats.Max(grades),
	}
	for _, n := range xrelnum[1:] {
		sc.jrelnum += n
	}
	sc.ideal = sc.buildIdealGrades()
	sc.idealCum = floats.CumSum(make([]float64, len(sc.ideal)), sc.ideal)
	return sc, nil
}

func (sc *Scale) buildIdealGrades() []float64 {
	ideal := make([]float64, 0, sc.jrelnum)
	for level, num := range sc.xrelnum {
		if level == 0 {
			continue
		}
		for range num {
			ideal = append(ideal, sc.grades[level-1])
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))
	return ideal
}

// Grades returns a copy of the per-level gain values.
func (sc *Scale) Grades() []float64 { return slices.Clone(sc.grades) }

// XRelNum returns a copy of the per-level judged counts.
func (sc *Scale) XRelNum() []int { return slices.Clone(sc.xrelnum) }

// JRelNum returns the number of judged relevant documents.
func (sc *Scale) JRelNum() int { return sc.jrelnum }

// MaxGrade returns the largest configured gain value.
func (sc *Scale) MaxGrade() float64 { return sc.maxGrade }

// GainOf returns the gain value of a grade; level 0 and unjudged are 0.
func (sc *Scale) GainOf(g Grade) float64 {
	level := g.Value()
	if level == 0 {
		return 0
	}
	return sc.grades[level-1]
}

// GradeAt returns the gain value of the document at rank.
func (sc *Scale) GradeAt(st *State, rank int) float64 {
	return sc.GainOf(st.At(rank))
}

// ERRGradeAt normalizes the gain at rank into [0,1) for the ERR family.
func (sc *Scale) ERRGradeAt(st *State, rank int) float64 {
	return sc.GradeAt(st, rank) / (sc.maxGrade + 1)
}

// RBPGradeAt normalizes the gain at rank into [0,1] for RBP.
func (sc *Scale) RBPGradeAt(st *State, rank int) float64 {
	return sc.GradeAt(st, rank) / sc.maxGrade
}

// IdealGrades returns the gain of every judged relevant document sorted descending.
func (sc *Scale) IdealGrades() []float64 { return slices.Clone(sc.ideal) }

// IdealCumGrade returns the ideal cumulative gain over ranks 1..rank.
func (sc *Scale) IdealCumGrade(rank int) float64 {
	if rank <= 0 || len(sc.idealCum) == 0 {
		return 0
	}
	if rank > len(sc.idealCum) {
		rank = len(sc.idealCum)
	}
	return sc.idealCum[rank-1]
}

// IdealRankedList returns synthetic documents for every judged document,
// including level 0, ordered by level descending. Ties keep enumeration order.
func (sc *Scale) IdealRankedList() RankedList {
	list := make(RankedList, 0, sc.jrelnum+sc.xrelnum[0])
	for level, num := range sc.xrelnum {
		for range num {
			list = append(list, Doc{ID: strconv.Itoa(len(list)), Grade: NewGrade(level)})
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Grade.Level > list[j].Grade.Level
	})
	return list
}
