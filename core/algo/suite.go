package algo

// Suite returns the standard metric set in report order: the whole-list
// metrics first, then the cutoff metrics for each cutoff in turn.
func Suite(sc *Scale, p Params) []Metric {
	metrics := []Metric{
		NewRR(),
		NewOMeasure(sc, p.Beta),
		NewPMeasure(sc, p.Beta),
		NewPPlus(sc, p.Beta),
		NewAP(sc, 0),
		NewQMeasure(sc, p.Beta, 0),
		NewNCUguP(sc, p.Stops),
		NewNCUguBR(sc, p.Stops, p.Beta),
		NewNCUrbP(sc, p.Gamma),
		NewNCUrbBR(sc, p.Gamma, p.Beta),
		NewRBP(sc, p.Persistence),
		NewERR(sc),
	}
	for _, cutoff := range p.Cutoffs {
		metrics = append(metrics,
			NewAP(sc, cutoff),
			NewQMeasure(sc, p.Beta, cutoff),
			NewNDCG(sc, p.LogBase, cutoff),
			NewMSNDCG(sc, cutoff),
			NewPrecision(cutoff),
			NewNERR(sc, cutoff),
			NewHit(cutoff),
		)
	}
	return metrics
}
