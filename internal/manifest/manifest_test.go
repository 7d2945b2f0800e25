package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestManifest_SetKeepsFirstPosition(t *testing.T) {
	m := New()
	m.Set("/B/x/y", Entry{ShortName: "b"})
	m.Set("/A/x/y", Entry{ShortName: "a"})
	m.Set("/B/x/y", Entry{ShortName: "b2"})

	require.Equal(t, []string{"/B/x/y", "/A/x/y"}, m.Keys())
	require.Equal(t, 2, m.Len())

	e, ok := m.Get("/B/x/y")
	require.True(t, ok)
	require.Equal(t, "b2", e.ShortName)
	require.Equal(t, []string{}, e.Files, "nil file lists are normalised")

	_, ok = m.Get("/C/x/y")
	require.False(t, ok)
}

func TestManifest_ZeroValue(t *testing.T) {
	var m Manifest
	m.Set("/A/B/C", Entry{})
	require.Equal(t, 1, m.Len())
}

func TestManifest_Encode(t *testing.T) {
	m := New()
	m.Set("/Z/RunIIAutumn18_realistic_v2-v2/NANOAODSIM", Entry{
		ShortName: "Z_v2-v2",
		Year:      "Other",
		Process:   "W&Jets",
		Files:     []string{"root://xrootd-cms.infn.it//store/a.root", "root://xrootd-cms.infn.it//store/b.root"},
	})
	m.Set("/A/Run2024C-v1/NANOAOD", Entry{
		ShortName: "A_Run2024C-v1",
		Year:      "2024",
		Process:   "W&Jets",
	})

	data, err := m.Encode()
	require.NoError(t, err)

	expected := `{
  "/Z/RunIIAutumn18_realistic_v2-v2/NANOAODSIM": {
    "short_name": "Z_v2-v2",
    "year": "Other",
    "process": "W&Jets",
    "xsec": null,
    "files": [
      "root://xrootd-cms.infn.it//store/a.root",
      "root://xrootd-cms.infn.it//store/b.root"
    ]
  },
  "/A/Run2024C-v1/NANOAOD": {
    "short_name": "A_Run2024C-v1",
    "year": "2024",
    "process": "W&Jets",
    "xsec": null,
    "files": []
  }
}`
	if diff := cmp.Diff(expected, string(data)); diff != "" {
		t.Fatalf("encoded manifest mismatch (-want +got):\n%s", diff)
	}
	require.True(t, json.Valid(data))
}

func TestManifest_EncodeEscapesNonASCII(t *testing.T) {
	m := New()
	m.Set("/Zürich/Run2024C-v1/NANOAOD", Entry{
		ShortName: "Zürich_Run2024C-v1",
		Year:      "2024",
		Process:   "Zürich 😀",
		Files:     []string{"root://r//store/\ufffd.root"},
	})

	data, err := m.Encode()
	require.NoError(t, err)

	expected := `{
  "/Z\u00fcrich/Run2024C-v1/NANOAOD": {
    "short_name": "Z\u00fcrich_Run2024C-v1",
    "year": "2024",
    "process": "Z\u00fcrich \ud83d\ude00",
    "xsec": null,
    "files": [
      "root://r//store/\ufffd.root"
    ]
  }
}`
	if diff := cmp.Diff(expected, string(data)); diff != "" {
		t.Fatalf("encoded manifest mismatch (-want +got):\n%s", diff)
	}

	var decoded map[string]Entry
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "Zürich 😀", decoded["/Zürich/Run2024C-v1/NANOAOD"].Process)
}

func TestManifest_EncodeEmpty(t *testing.T) {
	data, err := New().Encode()
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))
}

func TestManifest_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the manifest"), 0644))

	m := New()
	m.Set("/A/B/C", Entry{ShortName: "A_B", Year: "Other", Process: "p", Files: []string{"r//f"}})
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]Entry
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, map[string]Entry{
		"/A/B/C": {ShortName: "A_B", Year: "Other", Process: "p", Files: []string{"r//f"}},
	}, decoded)

	err = m.WriteFile(filepath.Join(t.TempDir(), "missing", "out.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to write manifest")
}
