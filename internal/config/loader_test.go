package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FullProfile(t *testing.T) {
	// --- Arrange ---
	path := writeProfiles(t, `
profile "wisc" {
  redirector = env.DAS_REDIRECTOR
  naming     = upper("data")
  workers    = 4

  resolver {
    command = format("%s/dasgoclient", env.HOME)
    timeout = "90s"
  }
}

profile "mc" {
  naming = "simulation"
}
`)
	environ := []string{"DAS_REDIRECTOR=root://cmsxcache.hep.wisc.edu/", "HOME=/opt/cms", "BROKEN"}

	// --- Act ---
	file, err := Load(context.Background(), path, environ)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, file.Profiles, 2)

	p, err := file.Profile("wisc")
	require.NoError(t, err)
	require.NotNil(t, p.Redirector)
	assert.Equal(t, "root://cmsxcache.hep.wisc.edu/", *p.Redirector)
	require.NotNil(t, p.Naming)
	assert.Equal(t, "DATA", *p.Naming)
	require.NotNil(t, p.Workers)
	assert.Equal(t, 4, *p.Workers)

	cmd, ok := p.Command()
	assert.True(t, ok)
	assert.Equal(t, "/opt/cms/dasgoclient", cmd)

	timeout, ok, err := p.TimeoutDuration()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 90*time.Second, timeout)

	mc, err := file.Profile("mc")
	require.NoError(t, err)
	assert.Nil(t, mc.Redirector)
	assert.Nil(t, mc.Workers)
	_, ok = mc.Command()
	assert.False(t, ok)
	_, ok, err = mc.TimeoutDuration()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_Profile(t *testing.T) {
	single := &File{Path: "one.hcl", Profiles: []*Profile{{Name: "only"}}}
	p, err := single.Profile("")
	require.NoError(t, err)
	assert.Equal(t, "only", p.Name)

	_, err = single.Profile("other")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProfileNotFound))

	empty := &File{Path: "none.hcl"}
	_, err = empty.Profile("")
	assert.True(t, errors.Is(err, ErrProfileNotFound))

	many := &File{Path: "many.hcl", Profiles: []*Profile{{Name: "a"}, {Name: "b"}}}
	_, err = many.Profile("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select one with -profile")
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "syntax error",
			content:     `profile "a" {`,
			errContains: "failed to parse profile file",
		},
		{
			name:        "unknown attribute",
			content:     `profile "a" { mirror = "x" }`,
			errContains: "failed to decode profile file",
		},
		{
			name:        "unknown top-level block",
			content:     `defaults { }`,
			errContains: "failed to decode profile file",
		},
		{
			name:        "unknown naming policy",
			content:     `profile "a" { naming = "reco" }`,
			errContains: "unknown naming policy",
		},
		{
			name:        "zero workers",
			content:     `profile "a" { workers = 0 }`,
			errContains: "workers must be at least 1",
		},
		{
			name:        "bad timeout",
			content:     "profile \"a\" {\n  resolver {\n    timeout = \"soon\"\n  }\n}\n",
			errContains: "invalid resolver timeout",
		},
		{
			name:        "empty command",
			content:     "profile \"a\" {\n  resolver {\n    command = \"\"\n  }\n}\n",
			errContains: "resolver command must not be empty",
		},
		{
			name:        "duplicate profile",
			content:     "profile \"a\" {}\nprofile \"a\" {}\n",
			errContains: "defined more than once",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeProfiles(t, tc.content)

			_, err := Load(context.Background(), path, nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"), nil)
	require.Error(t, err)
}
