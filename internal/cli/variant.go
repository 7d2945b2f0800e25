package cli

import "github.com/specialistvlad/dasmanifest/internal/dataset"

// Variant holds the built-in defaults of one program.
type Variant struct {
	Program    string
	Summary    string
	Naming     string
	Redirector string
}

var (
	// Simulation is the variant for simulated samples.
	Simulation = Variant{
		Program:    "obtain-rootfiles",
		Summary:    "Generate a file list manifest for simulated datasets.",
		Naming:     dataset.SimulationPolicy,
		Redirector: "root://xrootd-cms.infn.it/",
	}

	// Data is the variant for recorded data.
	Data = Variant{
		Program:    "obtain-rootfiles-data",
		Summary:    "Generate a file list manifest for recorded data datasets.",
		Naming:     dataset.DataPolicy,
		Redirector: "root://cmsxcache.hep.wisc.edu/",
	}
)
