package schema

// MetricScore is one metric value for one ranked list.
type MetricScore struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// ListResult holds the scores and summary counts for a single labelled ranked list.
type ListResult struct {
	Source   string        `json:"source" yaml:"source"`
	Prefix   string        `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	SysLen   int           `json:"syslen" yaml:"syslen"`
	JRel     int           `json:"jrel" yaml:"jrel"`
	JNonRel  int           `json:"jnonrel" yaml:"jnonrel"`
	FirstRel int           `json:"r1" yaml:"r1"`
	FirstMax int           `json:"rp" yaml:"rp"`
	Scores   []MetricScore `json:"scores" yaml:"scores"`
}

// ComputeResult is the full output of one compute invocation.
type ComputeResult struct {
	RelFile string       `json:"relfile" yaml:"relfile"`
	Grades  []float64    `json:"grades" yaml:"grades"`
	XRelNum []int        `json:"xrelnum" yaml:"xrelnum"`
	Lists   []ListResult `json:"lists" yaml:"lists"`
}

// LabelledRow is one output row of the label command.
type LabelledRow struct {
	ID    string `json:"id" yaml:"id"`
	Level *int   `json:"level,omitempty" yaml:"level,omitempty"`
}

// ScoreBand returns a coarse label for a normalized score in [0,1].
func ScoreBand(score float64) string {
	switch {
	case score >= 0.75:
		return "Strong"
	case score >= 0.5:
		return "Fair"
	case score >= 0.25:
		return "Weak"
	default:
		return "Poor"
	}
}
