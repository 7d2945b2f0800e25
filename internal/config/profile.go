package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/dasmanifest/internal/dataset"
)

// ErrProfileNotFound is returned by File.Profile when no profile matches.
var ErrProfileNotFound = errors.New("profile not found")

// File is the decoded content of a profile file.
type File struct {
	Path     string
	Profiles []*Profile `hcl:"profile,block"`
}

// Profile is a named set of overrides. Nil fields are not set in the file.
type Profile struct {
	Name       string    `hcl:"name,label"`
	Redirector *string   `hcl:"redirector,optional"`
	Naming     *string   `hcl:"naming,optional"`
	Workers    *int      `hcl:"workers,optional"`
	Resolver   *Resolver `hcl:"resolver,block"`
}

// Resolver configures the catalog client.
type Resolver struct {
	Command *string `hcl:"command,optional"`
	Timeout *string `hcl:"timeout,optional"`
}

// Profile returns the profile called name. An empty name selects the only
// profile of a single-profile file.
func (f *File) Profile(name string) (*Profile, error) {
	if name == "" {
		switch len(f.Profiles) {
		case 0:
			return nil, fmt.Errorf("%w: %s defines no profiles", ErrProfileNotFound, f.Path)
		case 1:
			return f.Profiles[0], nil
		default:
			return nil, fmt.Errorf("%s defines %d profiles, select one with -profile", f.Path, len(f.Profiles))
		}
	}
	for _, p := range f.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrProfileNotFound, name, f.Path)
}

// TimeoutDuration parses the resolver timeout. ok is false when unset.
func (p *Profile) TimeoutDuration() (d time.Duration, ok bool, err error) {
	if p.Resolver == nil || p.Resolver.Timeout == nil {
		return 0, false, nil
	}
	d, err = time.ParseDuration(*p.Resolver.Timeout)
	if err != nil {
		return 0, false, fmt.Errorf("profile %q: invalid resolver timeout: %w", p.Name, err)
	}
	if d < 0 {
		return 0, false, fmt.Errorf("profile %q: resolver timeout must not be negative", p.Name)
	}
	return d, true, nil
}

// Command returns the resolver command. ok is false when unset.
func (p *Profile) Command() (string, bool) {
	if p.Resolver == nil || p.Resolver.Command == nil {
		return "", false
	}
	return *p.Resolver.Command, true
}

func (p *Profile) validate() error {
	if p.Naming != nil {
		if _, err := dataset.PolicyByName(*p.Naming); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	if p.Workers != nil && *p.Workers < 1 {
		return fmt.Errorf("profile %q: workers must be at least 1", p.Name)
	}
	if cmd, ok := p.Command(); ok && cmd == "" {
		return fmt.Errorf("profile %q: resolver command must not be empty", p.Name)
	}
	if _, _, err := p.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}
