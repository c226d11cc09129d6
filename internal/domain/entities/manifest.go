package entities

// Attribute is a single "Name: Value" manifest line
type Attribute struct {
	Name  string
	Value string
}

// Section is a per-entry manifest section introduced by a "Name:" line
type Section struct {
	Name       string
	Attributes []Attribute
}

// Manifest is a jar manifest: the main section followed by per-entry sections.
// Order is preserved so encoding is deterministic.
type Manifest struct {
	Main     []Attribute
	Sections []Section
}

// Get returns the value of a main attribute
func (m *Manifest) Get(name string) (string, bool) {
	return lookup(m.Main, name)
}

// Section returns the per-entry section for an entry path
func (m *Manifest) Section(name string) (*Section, bool) {
	for i := range m.Sections {
		if m.Sections[i].Name == name {
			return &m.Sections[i], true
		}
	}
	return nil, false
}

// Get returns the value of an attribute in the section
func (s *Section) Get(name string) (string, bool) {
	return lookup(s.Attributes, name)
}

func lookup(attrs []Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
