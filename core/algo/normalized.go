package algo

// normalized divides a measure's score by the same measure's score on the ideal list.
type normalized struct {
	Measure
	ideal float64
}

// Normalize wraps m so Compute reports actual / ideal. The ideal score is
// computed from sc once. An empty judgment set yields a zero denominator;
// callers must reject that configuration before scoring.
func Normalize(m Measure, sc *Scale) Metric {
	return normalized{Measure: m, ideal: Score(m, sc.IdealRankedList())}
}

func (n normalized) Compute(list RankedList) float64 {
	return Score(n.Measure, list) / n.ideal
}
