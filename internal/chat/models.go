package chat

import (
	"time"
)

// Variable identifies a dataset variable a query targets.
type Variable string

const (
	VariableTemperature Variable = "TEMP"
	VariableSalinity    Variable = "PSAL"
	VariablePressure    Variable = "PRES"
	VariableLatitude    Variable = "LATITUDE"
	VariableLongitude   Variable = "LONGITUDE"
)

// Operation is the aggregation a query requests.
type Operation string

const (
	OperationMean    Operation = "mean"
	OperationMax     Operation = "max"
	OperationMin     Operation = "min"
	OperationProfile Operation = "profile"
)

// VizType hints how a result should be rendered.
type VizType string

const (
	VizTable   VizType = "table"
	VizProfile VizType = "profile"
)

// Range is an inclusive numeric interval.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether v lies within the range, inclusive on both ends.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// LocationFilter restricts profiles to a latitude/longitude box.
type LocationFilter struct {
	LatRange Range `json:"lat_range"`
	LonRange Range `json:"lon_range"`
}

// TimeRange restricts profiles to an observation-time window, inclusive.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// StructuredQuery is the interpreter's output: what to compute, over which
// slice of the dataset, and how to render it. Immutable once produced.
type StructuredQuery struct {
	Variable   Variable        `json:"variable"`
	Operation  Operation       `json:"operation"`
	DepthRange *Range          `json:"depth_range,omitempty"`
	Location   *LocationFilter `json:"location,omitempty"`
	TimeRange  *TimeRange      `json:"time_range,omitempty"`
	VizType    VizType         `json:"viz_type"`

	// Err marks a degraded interpretation; the query still carries usable
	// defaults so the pipeline can proceed with a best-effort answer.
	Err string `json:"error,omitempty"`
}

// ProfileSeries is the two-parallel-sequence shape of a depth profile result,
// ordered by increasing pressure.
type ProfileSeries struct {
	Pressure []float64 `json:"pressure"`
	Values   []float64 `json:"values"`
}

// ResultMetadata echoes what was computed and over how much data.
type ResultMetadata struct {
	Variable   Variable  `json:"variable"`
	Operation  Operation `json:"operation"`
	DepthRange *Range    `json:"depth_range,omitempty"`
	NProfiles  int       `json:"n_profiles"`
	NLevels    int       `json:"n_levels"`
	Units      string    `json:"units"`
	LongName   string    `json:"long_name"`
}

// ExecutionResult is the executor's output. Exactly one of Scalar and Profile
// is set on success; Error and AvailableVariables are set on failure.
type ExecutionResult struct {
	Success            bool            `json:"success"`
	Scalar             *float64        `json:"data,omitempty"`
	Profile            *ProfileSeries  `json:"profile,omitempty"`
	Metadata           *ResultMetadata `json:"metadata,omitempty"`
	Description        string          `json:"description,omitempty"`
	Error              string          `json:"error,omitempty"`
	AvailableVariables []string        `json:"available_variables,omitempty"`
}

// VisualizationPayload is a chart- or table-ready rendering of a result.
type VisualizationPayload struct {
	Type  string           `json:"type"` // "chart" or "table"
	Chart *ChartConfig     `json:"chart,omitempty"`
	Rows  []map[string]any `json:"rows,omitempty"`
}

// ChartConfig describes a line chart for a depth profile.
type ChartConfig struct {
	ChartType   string        `json:"chartType"`
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis"`
	YAxis       string        `json:"yAxis"`
	InvertYAxis bool          `json:"invertYAxis"`
	Series      []ChartSeries `json:"series"`
}

// ChartSeries is one plotted line: X values against Y (pressure) values.
type ChartSeries struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// QueryRecord is one persisted question/answer exchange.
type QueryRecord struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	UserQuery string           `json:"user_query"`
	Response  string           `json:"ai_response"`
	Parsed    *StructuredQuery `json:"parsed_query,omitempty"`
	Result    *ExecutionResult `json:"data_result,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// SessionStats summarizes a session's query history.
type SessionStats struct {
	TotalQueries    int            `json:"total_queries"`
	FirstQueryTime  *time.Time     `json:"first_query_time,omitempty"`
	LastQueryTime   *time.Time     `json:"last_query_time,omitempty"`
	VariableCounts  map[string]int `json:"most_common_variables"`
	OperationCounts map[string]int `json:"query_types"`
}
