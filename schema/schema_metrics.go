package schema

// MetricDefinition describes one metric for the catalog output.
type MetricDefinition struct {
	Name     string       `json:"name" yaml:"name"`
	Family   MetricFamily `json:"family" yaml:"family"`
	Gain     string       `json:"gain" yaml:"gain"`
	Discount string       `json:"discount" yaml:"discount"`
	Cutoff   bool         `json:"cutoff" yaml:"cutoff"`
	Normal   bool         `json:"normalized" yaml:"normalized"`
}

// MetricsRenderModel contains everything needed for displaying metric definitions.
type MetricsRenderModel struct {
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Metrics     []MetricDefinition `json:"metrics" yaml:"metrics"`
}

// MetricCatalog lists every metric in compute order.
var MetricCatalog = []MetricDefinition{
	{Name: RRName, Family: ReciprocalFamily, Gain: "1/rank", Discount: "1 at first relevant rank"},
	{Name: OMeasureName, Family: ReciprocalFamily, Gain: "(1+beta*g(r))/(r+beta*icg(r))", Discount: "1 at first relevant rank"},
	{Name: PMeasureName, Family: ReciprocalFamily, Gain: "blended ratio", Discount: "1 at first max-level rank"},
	{Name: PPlusName, Family: ReciprocalFamily, Gain: "blended ratio", Discount: "1/#rel up to first max-level rank"},
	{Name: APName, Family: UtilityFamily, Gain: "precision", Discount: "uniform stop", Cutoff: true},
	{Name: QMeasureName, Family: UtilityFamily, Gain: "blended ratio", Discount: "uniform stop", Cutoff: true},
	{Name: NCUguPName, Family: UtilityFamily, Gain: "precision", Discount: "graded-uniform stop"},
	{Name: NCUguBRName, Family: UtilityFamily, Gain: "blended ratio", Discount: "graded-uniform stop"},
	{Name: NCUrbPName, Family: UtilityFamily, Gain: "precision", Discount: "rank-biased stop"},
	{Name: NCUrbBRName, Family: UtilityFamily, Gain: "blended ratio", Discount: "rank-biased stop"},
	{Name: RBPName, Family: CascadeFamily, Gain: "g(r)/maxgrade", Discount: "(1-p)*p^(r-1)"},
	{Name: ERRName, Family: CascadeFamily, Gain: "g(r)/(maxgrade+1)", Discount: "(1/r)*prod(1-previous gains)"},
	{Name: NERRName, Family: CascadeFamily, Gain: "g(r)/(maxgrade+1)", Discount: "(1/r)*prod(1-previous gains)", Cutoff: true, Normal: true},
	{Name: NDCGName, Family: CumulativeFamily, Gain: "g(r)", Discount: "1/log_b(r) for r>=b", Cutoff: true, Normal: true},
	{Name: MSNDCGName, Family: CumulativeFamily, Gain: "g(r)", Discount: "1/ln(r+1)", Cutoff: true, Normal: true},
	{Name: PrecisionName, Family: SetFamily, Gain: "1 if relevant", Discount: "1/cutoff", Cutoff: true},
	{Name: HitName, Family: SetFamily, Gain: "1 if relevant", Discount: "1 until the first relevant rank", Cutoff: true},
	{Name: RecallName, Family: SetFamily, Gain: "sum of levels retrieved", Discount: "1/jrel"},
}
