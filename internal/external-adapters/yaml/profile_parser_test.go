package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
)

func TestProfileParser_Parse_Full(t *testing.T) {
	data := []byte(`name: fork
specification:
  vendor: Example Corp
  title: Dependency Finder (fork)
implementation:
  vendor: Example Corp
  title: DF Fork
  url: https://example.com/df
copyright:
  holder: Example Corp
  date: 2020-2026
bean_marker: com/example/gui/Main.class
`)

	profile, err := NewProfileParser().Parse(data)
	require.NoError(t, err)

	assert.Equal(t, &entities.Profile{
		Name:                 "fork",
		SpecificationVendor:  "Example Corp",
		SpecificationTitle:   "Dependency Finder (fork)",
		ImplementationVendor: "Example Corp",
		ImplementationTitle:  "DF Fork",
		ImplementationURL:    "https://example.com/df",
		CopyrightHolder:      "Example Corp",
		CopyrightDate:        "2020-2026",
		BeanMarkerTarget:     "com/example/gui/Main.class",
	}, profile)
}

func TestProfileParser_Parse_MergesDefaults(t *testing.T) {
	profile, err := NewProfileParser().Parse([]byte("name: dated\ncopyright:\n  date: 2001-2026\n"))
	require.NoError(t, err)

	want := entities.DefaultProfile()
	want.Name = "dated"
	want.CopyrightDate = "2001-2026"
	assert.Equal(t, want, profile)
}

func TestProfileParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "invalid yaml", data: "name: [unclosed", wantErr: "failed to parse YAML"},
		{name: "missing name", data: "copyright:\n  date: '2001'\n", wantErr: "must have a name"},
		{name: "blank marker", data: "name: x\nbean_marker: '   '\n", wantErr: "cannot be blank"},
		{name: "directory marker", data: "name: x\nbean_marker: com/example/\n", wantErr: "names a directory"},
		{name: "absolute marker", data: "name: x\nbean_marker: /com/Main.class\n", wantErr: "relative to the jar root"},
		{name: "multiline marker", data: "name: x\nbean_marker: \"a\\nb.class\"\n", wantErr: "bean_marker cannot contain line breaks"},
		{name: "block scalar vendor", data: "name: x\nspecification:\n  vendor: |\n    Jean\n    Tessier\n", wantErr: "specification.vendor cannot contain line breaks"},
		{name: "multiline title", data: "name: x\nimplementation:\n  title: \"Dependency\\r\\nFinder\"\n", wantErr: "implementation.title cannot contain line breaks"},
		{name: "multiline url", data: "name: x\nimplementation:\n  url: \"https://a/\\n\"\n", wantErr: "implementation.url cannot contain line breaks"},
		{name: "multiline copyright", data: "name: x\ncopyright:\n  holder: \"Jean\\nTessier\"\n  date: 2001-2025\n", wantErr: "copyright.holder cannot contain line breaks"},
		{name: "NUL in copyright date", data: "name: x\ncopyright:\n  date: \"2001\\0\"\n", wantErr: "copyright.date cannot contain line breaks or NUL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfileParser().Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfileParser_ParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fork.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: fork\n"), 0600))

	profile, err := NewProfileParser().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fork", profile.Name)

	_, err = NewProfileParser().ParseFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(map[string]string{"Implementation-Version": "2.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "Implementation-Version: 2.0.1\n", string(data))
}
