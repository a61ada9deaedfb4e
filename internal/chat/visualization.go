package chat

import "math"

// BuildVisualization turns an execution result into a chart- or table-ready
// payload. A nil return means "nothing to draw" and must not be treated as an
// error by callers.
func BuildVisualization(res ExecutionResult, hint VizType) *VisualizationPayload {
	switch {
	case hint == VizProfile && res.Profile != nil:
		return profileChart(res)

	case hint == VizTable && res.Scalar != nil:
		return &VisualizationPayload{
			Type: "table",
			Rows: []map[string]any{{"Value": round2(*res.Scalar)}},
		}

	case hint == VizTable && res.Profile != nil:
		// A structured result under a table hint becomes one row echoing
		// its fields.
		return &VisualizationPayload{
			Type: "table",
			Rows: []map[string]any{{
				"pressure": res.Profile.Pressure,
				"values":   res.Profile.Values,
			}},
		}

	default:
		return nil
	}
}

// profileChart renders a depth profile as a line chart with the pressure axis
// inverted so the surface sits at the top.
func profileChart(res ExecutionResult) *VisualizationPayload {
	title := "Oceanographic Profile"
	xAxis := "Value"
	if res.Metadata != nil {
		xAxis = res.Metadata.LongName
		if res.Metadata.Units != "" {
			xAxis += " (" + res.Metadata.Units + ")"
		}
	}

	return &VisualizationPayload{
		Type: "chart",
		Chart: &ChartConfig{
			ChartType:   "line",
			Title:       title,
			XAxis:       xAxis,
			YAxis:       "Pressure (dbar)",
			InvertYAxis: true,
			Series: []ChartSeries{{
				Name: "Profile",
				X:    res.Profile.Values,
				Y:    res.Profile.Pressure,
			}},
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
