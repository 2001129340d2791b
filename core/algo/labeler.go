package algo

import "fmt"

// Labeler attaches relevance levels from a judgment set to ranked document IDs.
type Labeler struct {
	qrels     Qrels
	truncate  int
	condensed bool
}

// NewLabeler creates a labeler. A truncate value of 0 disables truncation.
// In condensed mode unjudged documents are dropped from the output.
func NewLabeler(qrels Qrels, truncate int, condensed bool) *Labeler {
	return &Labeler{qrels: qrels, truncate: truncate, condensed: condensed}
}

// Label returns the labelled ranked list for ids, in input order.
// Truncation counts output rows, so it applies after condensed filtering.
func (l *Labeler) Label(ids []string) RankedList {
	out := make(RankedList, 0, len(ids))
	for _, id := range ids {
		grade := Unjudged
		if level, ok := l.qrels[id]; ok {
			grade = NewGrade(level)
		}
		if !l.condensed || grade.Judged {
			out = append(out, Doc{ID: id, Grade: grade})
		}
		if l.truncate > 0 && len(out) >= l.truncate {
			break
		}
	}
	return out
}

// PerLevelCounts returns the number of judged documents at each level 0..numLevels-1.
func (l *Labeler) PerLevelCounts(numLevels int) ([]int, error) {
	xrelnum := make([]int, numLevels)
	for id, level := range l.qrels {
		if level < 0 || level >= numLevels {
			return nil, fmt.Errorf("%w: document %s has level L%d but only %d levels are configured",
				ErrLevelOutOfRange, id, level, numLevels-1)
		}
		xrelnum[level]++
	}
	return xrelnum, nil
}

// RelevantCount returns the number of judged documents with a level above 0.
func (l *Labeler) RelevantCount() int {
	count := 0
	for _, level := range l.qrels {
		if level > 0 {
			count++
		}
	}
	return count
}
