package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/dasmanifest/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Load parses and decodes the profile file at path. environ, in the form of
// os.Environ, is exposed to expressions as the `env` object.
func Load(ctx context.Context, path string, environ []string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading profile file.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile file %s: %w", path, diags)
	}

	file := &File{Path: path}
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(environ), file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile file %s: %w", path, diags)
	}

	seen := make(map[string]struct{}, len(file.Profiles))
	for _, p := range file.Profiles {
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("profile %q is defined more than once in %s", p.Name, path)
		}
		seen[p.Name] = struct{}{}
		if err := p.validate(); err != nil {
			return nil, err
		}
	}

	logger.Debug("Profile file loaded.", "path", path, "profiles", len(file.Profiles))
	return file, nil
}

func evalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, e := range environ {
		k, v, ok := strings.Cut(e, "=")
		if ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"format":    stdlib.FormatFunc,
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
}
