package argo

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// profileFile is the on-disk JSON layout for real float data.
type profileFile struct {
	Profiles []Profile `json:"profiles"`
}

// Loader builds datasets from backing files and caches them per source path
// for the process lifetime. When a source is absent or unreadable it falls
// back to the deterministic synthetic dataset instead of failing.
type Loader struct {
	defaultPath string

	mu    sync.Mutex
	cache map[string]*Dataset
}

// NewLoader creates a loader with a default source path used when Load is
// called with an empty path.
func NewLoader(defaultPath string) *Loader {
	return &Loader{
		defaultPath: defaultPath,
		cache:       make(map[string]*Dataset),
	}
}

// Load returns the dataset for the given source path, building it on first
// access. The mutex guarantees a single construction under concurrent first
// access. Load never fails: any load error degrades to synthetic data.
func (l *Loader) Load(path string) *Dataset {
	if path == "" {
		path = l.defaultPath
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if ds, ok := l.cache[path]; ok {
		return ds
	}

	ds := l.loadOrSynthesize(path)
	l.cache[path] = ds
	return ds
}

func (l *Loader) loadOrSynthesize(path string) *Dataset {
	if path == "" {
		log.Printf("INFO: no float data source configured; using synthetic dataset")
		return Synthetic()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("WARN: float data file %s not readable (%v); using synthetic dataset", path, err)
		return Synthetic()
	}

	var file profileFile
	if err := json.Unmarshal(raw, &file); err != nil {
		log.Printf("WARN: float data file %s not parseable (%v); using synthetic dataset", path, err)
		return Synthetic()
	}

	ds, err := NewDataset(file.Profiles)
	if err != nil {
		log.Printf("WARN: float data file %s invalid (%v); using synthetic dataset", path, err)
		return Synthetic()
	}

	log.Printf("INFO: loaded %d profiles from %s", len(ds.Profiles()), path)
	return ds
}
