package dataset

import (
	"fmt"
	"strings"
)

// YearOther is the label used when no known year marker is found.
const YearOther = "Other"

// Policy derives the manifest metadata of a dataset from its identifier.
type Policy interface {
	Name() string
	ShortName(id Identifier) string
	Year(id Identifier) string
}

// Simulation is the naming policy for simulated samples.
type Simulation struct{}

// Data is the naming policy for recorded data. Identifiers that do not look
// like a run era fall back to the Simulation short name.
type Data struct{}

// Policy names accepted by PolicyByName.
const (
	SimulationPolicy = "simulation"
	DataPolicy       = "data"
)

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SimulationPolicy, "mc":
		return Simulation{}, nil
	case DataPolicy:
		return Data{}, nil
	default:
		return nil, fmt.Errorf("unknown naming policy %q: must be %q or %q", name, SimulationPolicy, DataPolicy)
	}
}

func (Simulation) Name() string { return SimulationPolicy }

func (Simulation) ShortName(id Identifier) string {
	return id.primaryStem() + "_" + id.versionSuffix()
}

func (Simulation) Year(id Identifier) string {
	return firstMarker(id.Raw, []yearMarker{
		{"2024", "2024"},
		{"2022", "2022"},
	})
}

func (Data) Name() string { return DataPolicy }

func (Data) ShortName(id Identifier) string {
	if strings.Contains(id.Secondary, "Run20") {
		return id.Primary + "_" + id.Secondary
	}
	return Simulation{}.ShortName(id)
}

func (Data) Year(id Identifier) string {
	return firstMarker(id.Raw, []yearMarker{
		{"Run2024", "2024"},
		{"Run2023", "2023"},
		{"Run2022", "2022"},
	})
}

type yearMarker struct {
	substr string
	label  string
}

// firstMarker checks markers in order and returns the label of the first
// one contained in s.
func firstMarker(s string, markers []yearMarker) string {
	for _, m := range markers {
		if strings.Contains(s, m.substr) {
			return m.label
		}
	}
	return YearOther
}
