package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubGenerator is a TextGenerator test double.
type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func scalarResult(op Operation, value float64) (StructuredQuery, ExecutionResult) {
	q := StructuredQuery{Variable: VariableTemperature, Operation: op, VizType: VizTable}
	res := ExecutionResult{
		Success: true,
		Scalar:  &value,
		Metadata: &ResultMetadata{
			Variable:  VariableTemperature,
			Operation: op,
			Units:     "degrees_Celsius",
			LongName:  "Temperature",
		},
	}
	return q, res
}

func TestComposeFailedResultCarriesErrorText(t *testing.T) {
	q := StructuredQuery{Variable: "BOGUS", Operation: OperationMean}
	res := ExecutionResult{Success: false, Error: "variable 'BOGUS' not found in dataset"}

	// With and without a configured generator the error text must appear.
	for _, c := range []*Composer{
		NewComposer(nil, 0),
		NewComposer(&stubGenerator{text: "ignored"}, 0),
	} {
		got := c.Compose(context.Background(), "bogus question", q, res)
		if !strings.Contains(got, "variable 'BOGUS' not found in dataset") {
			t.Errorf("expected literal error text in response, got %q", got)
		}
	}
}

func TestComposeTemplates(t *testing.T) {
	c := NewComposer(nil, 0)

	cases := []struct {
		op   Operation
		want string
	}{
		{OperationMean, "the average temperature is 3.52 degrees_Celsius"},
		{OperationMax, "The maximum temperature recorded is 3.52 degrees_Celsius."},
		{OperationMin, "The minimum temperature found is 3.52 degrees_Celsius."},
	}

	for _, tc := range cases {
		q, res := scalarResult(tc.op, 3.519)
		got := c.Compose(context.Background(), "question", q, res)
		if !strings.Contains(got, tc.want) {
			t.Errorf("operation %s: expected %q in %q", tc.op, tc.want, got)
		}
	}
}

func TestComposeProfileTemplate(t *testing.T) {
	c := NewComposer(nil, 0)

	q := StructuredQuery{Variable: VariableSalinity, Operation: OperationProfile, VizType: VizProfile}
	res := ExecutionResult{
		Success: true,
		Profile: &ProfileSeries{Pressure: []float64{0, 100}, Values: []float64{34.6, 34.8}},
		Metadata: &ResultMetadata{
			Variable: VariableSalinity,
			Units:    "PSU",
			LongName: "Practical Salinity",
		},
	}

	got := c.Compose(context.Background(), "salinity profile", q, res)
	if !strings.Contains(got, "practical salinity profile") {
		t.Errorf("expected profile sentence naming the variable, got %q", got)
	}
}

func TestComposeUnknownOperationGenericSentence(t *testing.T) {
	c := NewComposer(nil, 0)

	q := StructuredQuery{Variable: VariableTemperature, Operation: "summarize"}
	res := ExecutionResult{Success: true, Metadata: &ResultMetadata{LongName: "Temperature"}}

	got := c.Compose(context.Background(), "question", q, res)
	if got != "I've processed your query and the data is ready for viewing." {
		t.Errorf("unexpected generic response %q", got)
	}
}

func TestComposePrefersGenerator(t *testing.T) {
	c := NewComposer(&stubGenerator{text: "The ocean is about 3.5 degrees down there."}, 0)

	q, res := scalarResult(OperationMean, 3.52)
	got := c.Compose(context.Background(), "how cold is it", q, res)
	if got != "The ocean is about 3.5 degrees down there." {
		t.Errorf("expected generator output, got %q", got)
	}
}

func TestComposeFallsBackWhenGeneratorFails(t *testing.T) {
	for _, gen := range []*stubGenerator{
		{err: errors.New("upstream unavailable")},
		{text: "   "}, // empty payload
	} {
		c := NewComposer(gen, 0)
		q, res := scalarResult(OperationMean, 3.52)
		got := c.Compose(context.Background(), "how cold is it", q, res)
		if !strings.Contains(got, "the average temperature is 3.52") {
			t.Errorf("expected template fallback, got %q", got)
		}
	}
}
