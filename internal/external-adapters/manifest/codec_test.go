package manifest

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
)

func TestCodec_Encode_Stamp(t *testing.T) {
	m := &entities.Manifest{
		Main: []entities.Attribute{
			{Name: "Specification-Vendor", Value: "Jean Tessier"},
			{Name: "Specification-Version", Value: "2.0.1"},
		},
		Sections: []entities.Section{
			{
				Name:       "com/jeantessier/dependencyfinder/gui/DependencyFinder.class",
				Attributes: []entities.Attribute{{Name: "Java-Bean", Value: "true"}},
			},
		},
	}

	data, err := NewCodec().Encode(m)
	require.NoError(t, err)

	want := "Manifest-Version: 1.0\r\n" +
		"Specification-Vendor: Jean Tessier\r\n" +
		"Specification-Version: 2.0.1\r\n" +
		"\r\n" +
		"Name: com/jeantessier/dependencyfinder/gui/DependencyFinder.class\r\n" +
		"Java-Bean: true\r\n" +
		"\r\n"
	assert.Equal(t, want, string(data))
}

func TestCodec_Encode_KeepsExistingVersion(t *testing.T) {
	m := &entities.Manifest{Main: []entities.Attribute{{Name: "Manifest-Version", Value: "2.0"}}}

	data, err := NewCodec().Encode(m)
	require.NoError(t, err)
	assert.Equal(t, "Manifest-Version: 2.0\r\n\r\n", string(data))
}

func TestCodec_Encode_FoldsLongLines(t *testing.T) {
	long := "https://depfind.sourceforge.io/" + strings.Repeat("path/", 30)
	m := &entities.Manifest{Main: []entities.Attribute{{Name: "Implementation-URL", Value: long}}}

	data, err := NewCodec().Encode(m)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
	require.Greater(t, len(lines), 3)
	for i, line := range lines {
		assert.LessOrEqual(t, len(line), MaxLineBytes, "line %d too long", i)
	}
	assert.True(t, strings.HasPrefix(lines[2], " "), "second physical line of the URL is a continuation")

	decoded, err := NewCodec().Decode(data)
	require.NoError(t, err)
	got, ok := decoded.Get("Implementation-URL")
	require.True(t, ok)
	assert.Equal(t, long, got)
}

func TestCodec_Encode_FoldsOnRuneBoundaries(t *testing.T) {
	value := strings.Repeat("é", 60) + "日本語" + strings.Repeat("ü", 30)
	m := &entities.Manifest{Main: []entities.Attribute{{Name: "Copyright-Holder", Value: value}}}

	data, err := NewCodec().Encode(m)
	require.NoError(t, err)

	for _, line := range strings.Split(string(data), "\r\n") {
		assert.LessOrEqual(t, len(line), MaxLineBytes)
		assert.True(t, utf8.ValidString(line), "line %q splits a rune", line)
	}

	decoded, err := NewCodec().Decode(data)
	require.NoError(t, err)
	got, _ := decoded.Get("Copyright-Holder")
	assert.Equal(t, value, got)
}

func TestCodec_Encode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest *entities.Manifest
		wantErr  string
	}{
		{
			name:    "nil manifest",
			wantErr: "manifest cannot be nil",
		},
		{
			name:     "invalid attribute name",
			manifest: &entities.Manifest{Main: []entities.Attribute{{Name: "Bad Name", Value: "x"}}},
			wantErr:  "invalid attribute name",
		},
		{
			name:     "line break in value",
			manifest: &entities.Manifest{Main: []entities.Attribute{{Name: "Copyright-Date", Value: "2001\n2025"}}},
			wantErr:  "line break",
		},
		{
			name:     "unnamed section",
			manifest: &entities.Manifest{Sections: []entities.Section{{}}},
			wantErr:  "section name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec().Encode(tt.manifest)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCodec_Decode(t *testing.T) {
	data := "Manifest-Version: 1.0\n" +
		"Implementation-Version:  2.0.1 \n" +
		"Implementation-URL: https://depfind.\n" +
		" sourceforge.io/\n" +
		"\n" +
		"Name: com/jeantessier/A.class\n" +
		"Java-Bean: true\n" +
		"\n" +
		"Name: com/jeantessier/B.class\n" +
		"Sealed: false\n"

	m, err := NewCodec().Decode([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []entities.Attribute{
		{Name: "Manifest-Version", Value: "1.0"},
		{Name: "Implementation-Version", Value: " 2.0.1 "},
		{Name: "Implementation-URL", Value: "https://depfind.sourceforge.io/"},
	}, m.Main)

	require.Len(t, m.Sections, 2)
	s, ok := m.Section("com/jeantessier/A.class")
	require.True(t, ok)
	v, _ := s.Get("Java-Bean")
	assert.Equal(t, "true", v)
	assert.Equal(t, "com/jeantessier/B.class", m.Sections[1].Name)
}

func TestCodec_Decode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "missing separator",
			data:    "Manifest-Version 1.0\r\n",
			wantErr: "missing",
		},
		{
			name:    "leading continuation",
			data:    " orphan\r\n",
			wantErr: "continuation without a preceding attribute",
		},
		{
			name:    "continuation after blank line",
			data:    "Manifest-Version: 1.0\r\n\r\n orphan\r\n",
			wantErr: "continuation without a preceding attribute",
		},
		{
			name:    "section without name",
			data:    "Manifest-Version: 1.0\r\n\r\nJava-Bean: true\r\n",
			wantErr: "section must start with Name",
		},
		{
			name:    "invalid name",
			data:    "Bad Name: x\r\n",
			wantErr: "invalid attribute name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec().Decode([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCodec_StampRoundTrip(t *testing.T) {
	stamp := entities.ManifestStamp{
		SpecificationVendor:   "Jean Tessier",
		SpecificationTitle:    "Dependency Finder",
		SpecificationVersion:  "unknown",
		SpecificationDate:     "unknown",
		ImplementationVendor:  "Jean Tessier",
		ImplementationTitle:   "Dependency Finder",
		ImplementationVersion: "unknown",
		ImplementationDate:    "unknown",
		ImplementationURL:     "https://depfind.sourceforge.io/",
		CopyrightHolder:       "Jean Tessier",
		CopyrightDate:         "2001-2025",
		CompilerVendor:        "The Go Authors",
		CompilerTitle:         "Go Runtime Environment (linux/amd64)",
		CompilerVersion:       "go1.24.0",
		BeanMarkerTarget:      "com/jeantessier/dependencyfinder/gui/DependencyFinder.class",
	}

	data, err := NewCodec().Encode(stamp.Manifest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Manifest-Version: 1.0\r\n"))
	assert.True(t, strings.HasSuffix(string(data), "\r\n\r\n"))

	m, err := NewCodec().Decode(data)
	require.NoError(t, err)
	require.Len(t, m.Main, 15)
	assert.Equal(t, VersionAttribute, m.Main[0].Name)
	assert.Equal(t, stamp.Attributes(), m.Main[1:])
	assert.Equal(t, stamp.Manifest().Sections, m.Sections)
}
