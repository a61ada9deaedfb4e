package chat

// lexiconEntry maps keywords to the query fields they set. Empty fields are
// left untouched when the entry matches.
type lexiconEntry struct {
	name      string
	keywords  []string
	variable  Variable
	operation Operation
	vizType   VizType
}

// lexicon is scanned in order for every query; later entries override earlier
// ones when both match, so more specific entries belong further down. The
// ordering is load-bearing — see Interpret.
var lexicon = []lexiconEntry{
	{name: "temperature", keywords: []string{"temperature", "temp", "thermal"}, variable: VariableTemperature},
	{name: "salinity", keywords: []string{"salinity", "salt", "psal"}, variable: VariableSalinity},
	{name: "pressure", keywords: []string{"pressure", "depth", "dbar"}, variable: VariablePressure},
	{name: "profile", keywords: []string{"profile", "vertical plot"}, operation: OperationProfile, vizType: VizProfile},
	{name: "average", keywords: []string{"average", "mean", "avg"}, operation: OperationMean},
	{name: "maximum", keywords: []string{"maximum", "max", "highest"}, operation: OperationMax},
	{name: "minimum", keywords: []string{"minimum", "min", "lowest"}, operation: OperationMin},
}

// profileKeywords trigger the final profile override in Interpret.
var profileKeywords = []string{"profile", "vertical plot"}
