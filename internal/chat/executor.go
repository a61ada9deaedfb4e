package chat

import (
	"fmt"

	"github.com/floatchat/floatchat/internal/argo"
)

// Execute runs a structured query against a dataset: filter, then aggregate.
//
// Two failure modes surface as success=false: an unknown variable (with the
// list of valid alternatives) and filters that eliminate every value. The
// empty-result case is reported as an explicit error rather than a NaN scalar
// so results stay JSON-encodable. An unrecognized operation is deliberately
// treated as mean, never as an error.
func Execute(q StructuredQuery, ds *argo.Dataset) ExecutionResult {
	variable := string(q.Variable)

	info, ok := ds.Info(variable)
	if !ok {
		return ExecutionResult{
			Success:            false,
			Error:              fmt.Sprintf("variable '%s' not found in dataset", variable),
			AvailableVariables: ds.VariableNames(),
		}
	}

	// Profile-level filters: location box and observation-time window,
	// inclusive on both ends.
	var profiles []argo.Profile
	for _, p := range ds.Profiles() {
		if q.Location != nil &&
			(!q.Location.LatRange.Contains(p.Latitude) || !q.Location.LonRange.Contains(p.Longitude)) {
			continue
		}
		if q.TimeRange != nil && (p.Time.Before(q.TimeRange.From) || p.Time.After(q.TimeRange.To)) {
			continue
		}
		profiles = append(profiles, p)
	}

	if q.Operation == OperationProfile {
		return executeProfile(q, ds, profiles, info)
	}
	return executeScalar(q, ds, profiles, info)
}

// executeScalar computes mean/max/min over every surviving (profile, level)
// value of the variable.
func executeScalar(q StructuredQuery, ds *argo.Dataset, profiles []argo.Profile, info argo.VariableInfo) ExecutionResult {
	var (
		values    []float64
		maxLevels int
	)
	for _, p := range profiles {
		levels := 0
		for lvl, pres := range p.Pressure {
			if q.DepthRange != nil && !q.DepthRange.Contains(pres) {
				continue
			}
			v, ok := ds.Value(p, info.Name, lvl)
			if !ok {
				continue
			}
			values = append(values, v)
			levels++
		}
		if levels > maxLevels {
			maxLevels = levels
		}
	}

	if len(values) == 0 {
		return emptyResult(q)
	}

	var result float64
	var description string
	switch q.Operation {
	case OperationMax:
		result = values[0]
		for _, v := range values[1:] {
			if v > result {
				result = v
			}
		}
		description = fmt.Sprintf("Maximum %s", info.Name)
	case OperationMin:
		result = values[0]
		for _, v := range values[1:] {
			if v < result {
				result = v
			}
		}
		description = fmt.Sprintf("Minimum %s", info.Name)
	default:
		// mean, and the permissive fallback for unknown operations
		var sum float64
		for _, v := range values {
			sum += v
		}
		result = sum / float64(len(values))
		description = fmt.Sprintf("Average %s", info.Name)
	}

	return ExecutionResult{
		Success:     true,
		Scalar:      &result,
		Metadata:    metadataFor(q, info, len(profiles), maxLevels),
		Description: description,
	}
}

// executeProfile averages the variable across profiles independently at each
// depth level, returning parallel pressure/value sequences ordered by
// increasing pressure.
func executeProfile(q StructuredQuery, ds *argo.Dataset, profiles []argo.Profile, info argo.VariableInfo) ExecutionResult {
	maxLen := 0
	for _, p := range profiles {
		if len(p.Pressure) > maxLen {
			maxLen = len(p.Pressure)
		}
	}

	series := &ProfileSeries{}
	for lvl := 0; lvl < maxLen; lvl++ {
		var sum, pres float64
		n := 0
		for _, p := range profiles {
			if lvl >= len(p.Pressure) {
				continue
			}
			if q.DepthRange != nil && !q.DepthRange.Contains(p.Pressure[lvl]) {
				continue
			}
			v, ok := ds.Value(p, info.Name, lvl)
			if !ok {
				continue
			}
			sum += v
			pres = p.Pressure[lvl]
			n++
		}
		if n == 0 {
			continue
		}
		series.Pressure = append(series.Pressure, pres)
		series.Values = append(series.Values, sum/float64(n))
	}

	if len(series.Values) == 0 {
		return emptyResult(q)
	}

	return ExecutionResult{
		Success:     true,
		Profile:     series,
		Metadata:    metadataFor(q, info, len(profiles), len(series.Values)),
		Description: fmt.Sprintf("%s depth profile", info.Name),
	}
}

func metadataFor(q StructuredQuery, info argo.VariableInfo, nProfiles, nLevels int) *ResultMetadata {
	return &ResultMetadata{
		Variable:   Variable(info.Name),
		Operation:  q.Operation,
		DepthRange: q.DepthRange,
		NProfiles:  nProfiles,
		NLevels:    nLevels,
		Units:      info.Units,
		LongName:   info.LongName,
	}
}

func emptyResult(q StructuredQuery) ExecutionResult {
	return ExecutionResult{
		Success: false,
		Error:   fmt.Sprintf("no data matches the requested filters for %s", q.Variable),
	}
}
