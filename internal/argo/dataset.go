package argo

import (
	"fmt"
	"time"
)

// VariableInfo describes a dataset variable and its display metadata.
type VariableInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LongName    string `json:"long_name"`
	Units       string `json:"units"`
}

// variableCatalog lists every variable the executor can answer questions
// about, in the order they are reported to clients.
var variableCatalog = []VariableInfo{
	{Name: "TEMP", Description: "Sea Water Temperature", LongName: "Temperature", Units: "degrees_Celsius"},
	{Name: "PSAL", Description: "Practical Salinity", LongName: "Practical Salinity", Units: "PSU"},
	{Name: "PRES", Description: "Pressure", LongName: "Pressure", Units: "dbar"},
	{Name: "LATITUDE", Description: "Latitude", LongName: "Latitude", Units: "degrees_north"},
	{Name: "LONGITUDE", Description: "Longitude", LongName: "Longitude", Units: "degrees_east"},
}

// Profile is a single vertical cast of float measurements.
// Series values are aligned index-for-index with Pressure.
type Profile struct {
	ID        int                  `json:"id"`
	Latitude  float64              `json:"latitude"`
	Longitude float64              `json:"longitude"`
	Time      time.Time            `json:"time"`
	Pressure  []float64            `json:"pressure"`
	Series    map[string][]float64 `json:"series"`
}

// Dataset is an immutable collection of profiles plus variable metadata.
// Construct via NewDataset (or Synthetic); never mutate after construction.
type Dataset struct {
	profiles []Profile
}

// NewDataset validates per-profile series alignment and returns a dataset.
func NewDataset(profiles []Profile) (*Dataset, error) {
	for _, p := range profiles {
		for name, series := range p.Series {
			if len(series) != len(p.Pressure) {
				return nil, fmt.Errorf("profile %d: series %s has %d values for %d pressure levels",
					p.ID, name, len(series), len(p.Pressure))
			}
		}
	}
	return &Dataset{profiles: profiles}, nil
}

// Profiles returns the dataset's profiles. Callers must not modify them.
func (d *Dataset) Profiles() []Profile {
	return d.profiles
}

// HasVariable reports whether the named variable can be evaluated.
func (d *Dataset) HasVariable(name string) bool {
	_, ok := d.Info(name)
	return ok
}

// Info returns display metadata for a variable.
func (d *Dataset) Info(name string) (VariableInfo, bool) {
	for _, v := range variableCatalog {
		if v.Name == name {
			return v, true
		}
	}
	return VariableInfo{}, false
}

// Variables lists all queryable variables with their metadata.
func (d *Dataset) Variables() []VariableInfo {
	out := make([]VariableInfo, len(variableCatalog))
	copy(out, variableCatalog)
	return out
}

// VariableNames lists the queryable variable names.
func (d *Dataset) VariableNames() []string {
	names := make([]string, 0, len(variableCatalog))
	for _, v := range variableCatalog {
		names = append(names, v.Name)
	}
	return names
}

// Value resolves a variable at a given level of a profile. Per-level variables
// read their series; position variables are constant across levels.
func (d *Dataset) Value(p Profile, name string, level int) (float64, bool) {
	switch name {
	case "PRES":
		if level < 0 || level >= len(p.Pressure) {
			return 0, false
		}
		return p.Pressure[level], true
	case "LATITUDE":
		return p.Latitude, true
	case "LONGITUDE":
		return p.Longitude, true
	default:
		series, ok := p.Series[name]
		if !ok || level < 0 || level >= len(series) {
			return 0, false
		}
		return series[level], true
	}
}
