package chat

import (
	"testing"
)

func TestInterpretDefaults(t *testing.T) {
	// No recognized keywords at all.
	q := Interpret("tell me something interesting")

	if q.Variable != VariableTemperature {
		t.Errorf("expected default variable TEMP, got %s", q.Variable)
	}
	if q.Operation != OperationMean {
		t.Errorf("expected default operation mean, got %s", q.Operation)
	}
	if q.VizType != VizTable {
		t.Errorf("expected default viz table, got %s", q.VizType)
	}
	if q.DepthRange != nil {
		t.Errorf("expected no depth range, got %+v", q.DepthRange)
	}
}

func TestInterpretVariableKeywords(t *testing.T) {
	cases := []struct {
		text string
		want Variable
	}{
		{"what is the temperature", VariableTemperature},
		{"show me thermal structure", VariableTemperature},
		{"average salinity please", VariableSalinity},
		{"how salty is the water? salt content", VariableSalinity},
		{"what pressure was recorded", VariablePressure},
	}

	for _, tc := range cases {
		q := Interpret(tc.text)
		if q.Variable != tc.want {
			t.Errorf("Interpret(%q): expected variable %s, got %s", tc.text, tc.want, q.Variable)
		}
	}
}

func TestInterpretOperationKeywords(t *testing.T) {
	cases := []struct {
		text string
		want Operation
	}{
		{"average temperature", OperationMean},
		{"the mean salinity", OperationMean},
		{"highest temperature recorded", OperationMax},
		{"lowest salinity found", OperationMin},
	}

	for _, tc := range cases {
		q := Interpret(tc.text)
		if q.Operation != tc.want {
			t.Errorf("Interpret(%q): expected operation %s, got %s", tc.text, tc.want, q.Operation)
		}
	}
}

func TestInterpretProfileOverrideWins(t *testing.T) {
	// "maximum" sets operation=max first; the profile override must win.
	q := Interpret("show the maximum temperature profile")

	if q.Operation != OperationProfile {
		t.Errorf("expected profile override, got operation %s", q.Operation)
	}
	if q.VizType != VizProfile {
		t.Errorf("expected profile viz, got %s", q.VizType)
	}
}

func TestInterpretDepthLastMentionWins(t *testing.T) {
	q := Interpret("compare 1500 m with conditions at 300 dbar")

	if q.DepthRange == nil {
		t.Fatal("expected a depth range")
	}
	if q.DepthRange.Low != 200 || q.DepthRange.High != 400 {
		t.Errorf("expected depth range [200,400], got [%g,%g]", q.DepthRange.Low, q.DepthRange.High)
	}
}

func TestInterpretDepthClampedAtSurface(t *testing.T) {
	q := Interpret("temperature at 50m")

	if q.DepthRange == nil {
		t.Fatal("expected a depth range")
	}
	if q.DepthRange.Low != 0 || q.DepthRange.High != 150 {
		t.Errorf("expected depth range [0,150], got [%g,%g]", q.DepthRange.Low, q.DepthRange.High)
	}
}

func TestInterpretAverageTemperatureAtDepth(t *testing.T) {
	q := Interpret("What's the average temperature at 1000 meters?")

	if q.Variable != VariableTemperature {
		t.Errorf("expected TEMP, got %s", q.Variable)
	}
	if q.Operation != OperationMean {
		t.Errorf("expected mean, got %s", q.Operation)
	}
	if q.DepthRange == nil || q.DepthRange.Low != 900 || q.DepthRange.High != 1100 {
		t.Errorf("expected depth range [900,1100], got %+v", q.DepthRange)
	}
	if q.VizType != VizTable {
		t.Errorf("expected table viz, got %s", q.VizType)
	}
}

func TestInterpretDepthUnitVariants(t *testing.T) {
	for _, text := range []string{"salinity at 800 m", "salinity at 800 meters", "salinity at 800 dbar", "salinity at 800db"} {
		q := Interpret(text)
		if q.DepthRange == nil || q.DepthRange.Low != 700 || q.DepthRange.High != 900 {
			t.Errorf("Interpret(%q): expected depth range [700,900], got %+v", text, q.DepthRange)
		}
	}
}
