package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// MetricFamily groups metrics that share a user model.
	MetricFamily string

	// RelFormat is the layout of a relevance assessment file.
	RelFormat string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	TableOut   OutputMode = "table"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All run store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Relevance assessment file formats.
const (
	NTCIRRel RelFormat = "ntcir" // default, "<id> L<level>"
	TRECRel  RelFormat = "trec"  // "<topic> <iteration> <id> <level>"
)

// Metric families.
const (
	ReciprocalFamily MetricFamily = "reciprocal"
	UtilityFamily    MetricFamily = "ncu"
	CascadeFamily    MetricFamily = "cascade"
	CumulativeFamily MetricFamily = "cumulative-gain"
	SetFamily        MetricFamily = "set"
)

// Metric display names, as printed by the compute command.
const (
	RRName        = "RR"
	OMeasureName  = "O-measure"
	PMeasureName  = "P-measure"
	PPlusName     = "P-plus"
	APName        = "AP"
	QMeasureName  = "Q-measure"
	QCutoffName   = "Q" // Q-measure is printed as Q@NNNN when a cutoff is set
	NCUguPName    = "NCUgu,P"
	NCUguBRName   = "NCUgu,BR"
	NCUrbPName    = "NCUrb,P"
	NCUrbBRName   = "NCUrb,BR"
	RBPName       = "RBP"
	ERRName       = "ERR"
	NERRName      = "nERR"
	NDCGName      = "nDCG"
	MSNDCGName    = "MSnDCG"
	PrecisionName = "P"
	HitName       = "Hit"
	RecallName    = "Recall"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	TableOut:   {},
	CSVOut:     {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidRelFormats lists all valid relevance file formats.
var ValidRelFormats = map[RelFormat]struct{}{
	NTCIRRel: {},
	TRECRel:  {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
