package chat

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/floatchat/floatchat/internal/common"
)

// depthPattern matches depth mentions like "1000 m", "50m", "300 dbar".
var depthPattern = regexp.MustCompile(`(\d+)\s*(m|meters|dbar|db)\b`)

// depthWindow is the half-width of the pressure window placed around a
// mentioned depth.
const depthWindow = 100

// Interpret converts free text into a StructuredQuery. It never fails: an
// internal error degrades to the default query (temperature mean, table view)
// with the Err marker set, so downstream stages can still answer best-effort.
func Interpret(text string) (q StructuredQuery) {
	q = defaultQuery()

	defer func() {
		if r := recover(); r != nil {
			q = defaultQuery()
			q.Err = fmt.Sprintf("query interpretation failed: %v", r)
		}
	}()

	lower := common.Lower(text)

	// Lexicon pass. Every matching entry applies, in lexicon order, so the
	// last matching entry wins per field. Do not short-circuit.
	for _, entry := range lexicon {
		if !common.HasAny(lower, entry.keywords...) {
			continue
		}
		if entry.variable != "" {
			q.Variable = entry.variable
		}
		if entry.operation != "" {
			q.Operation = entry.operation
		}
		if entry.vizType != "" {
			q.VizType = entry.vizType
		}
	}

	// Depth pass. Multiple mentions use the last one; the window is clamped
	// at the surface.
	if matches := depthPattern.FindAllStringSubmatch(lower, -1); len(matches) > 0 {
		if depth, err := strconv.Atoi(matches[len(matches)-1][1]); err == nil {
			low := depth - depthWindow
			if low < 0 {
				low = 0
			}
			q.DepthRange = &Range{Low: float64(low), High: float64(depth + depthWindow)}
		}
	}

	// Profile override runs last and beats whatever the lexicon pass set:
	// "maximum profile" is a profile query.
	if common.HasAny(lower, profileKeywords...) {
		q.Operation = OperationProfile
		q.VizType = VizProfile
	}

	return q
}

func defaultQuery() StructuredQuery {
	return StructuredQuery{
		Variable:  VariableTemperature,
		Operation: OperationMean,
		VizType:   VizTable,
	}
}
