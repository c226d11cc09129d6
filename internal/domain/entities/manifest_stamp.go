package entities

// UnknownValue is substituted for a version or release date that was not provided
const UnknownValue = "unknown"

// Main attribute keys written by the stamper, in manifest order
const (
	AttrSpecificationVendor   = "Specification-Vendor"
	AttrSpecificationTitle    = "Specification-Title"
	AttrSpecificationVersion  = "Specification-Version"
	AttrSpecificationDate     = "Specification-Date"
	AttrImplementationVendor  = "Implementation-Vendor"
	AttrImplementationTitle   = "Implementation-Title"
	AttrImplementationVersion = "Implementation-Version"
	AttrImplementationDate    = "Implementation-Date"
	AttrImplementationURL     = "Implementation-URL"
	AttrCopyrightHolder       = "Copyright-Holder"
	AttrCopyrightDate         = "Copyright-Date"
	AttrCompilerVendor        = "Compiler-Vendor"
	AttrCompilerTitle         = "Compiler-Title"
	AttrCompilerVersion       = "Compiler-Version"
)

// Per-entry marker attribute
const (
	AttrJavaBean  = "Java-Bean"
	JavaBeanValue = "true"
)

// StampAttributeKeys lists the main attribute keys in the order they are written
var StampAttributeKeys = []string{
	AttrSpecificationVendor,
	AttrSpecificationTitle,
	AttrSpecificationVersion,
	AttrSpecificationDate,
	AttrImplementationVendor,
	AttrImplementationTitle,
	AttrImplementationVersion,
	AttrImplementationDate,
	AttrImplementationURL,
	AttrCopyrightHolder,
	AttrCopyrightDate,
	AttrCompilerVendor,
	AttrCompilerTitle,
	AttrCompilerVersion,
}

// CompilerInfo identifies the toolchain that executed the build
type CompilerInfo struct {
	Vendor  string
	Title   string
	Version string
}

// ManifestStamp holds every value written into an artifact manifest for one build.
// A stamp is built once per invocation and never modified afterwards.
type ManifestStamp struct {
	SpecificationVendor  string
	SpecificationTitle   string
	SpecificationVersion string
	SpecificationDate    string

	ImplementationVendor  string
	ImplementationTitle   string
	ImplementationVersion string
	ImplementationDate    string
	ImplementationURL     string

	CopyrightHolder string
	CopyrightDate   string

	CompilerVendor  string
	CompilerTitle   string
	CompilerVersion string

	BeanMarkerTarget string // artifact entry path, e.g. "com/example/Foo.class"
}

// Attributes returns the fourteen main attributes in manifest order
func (s ManifestStamp) Attributes() []Attribute {
	return []Attribute{
		{Name: AttrSpecificationVendor, Value: s.SpecificationVendor},
		{Name: AttrSpecificationTitle, Value: s.SpecificationTitle},
		{Name: AttrSpecificationVersion, Value: s.SpecificationVersion},
		{Name: AttrSpecificationDate, Value: s.SpecificationDate},
		{Name: AttrImplementationVendor, Value: s.ImplementationVendor},
		{Name: AttrImplementationTitle, Value: s.ImplementationTitle},
		{Name: AttrImplementationVersion, Value: s.ImplementationVersion},
		{Name: AttrImplementationDate, Value: s.ImplementationDate},
		{Name: AttrImplementationURL, Value: s.ImplementationURL},
		{Name: AttrCopyrightHolder, Value: s.CopyrightHolder},
		{Name: AttrCopyrightDate, Value: s.CopyrightDate},
		{Name: AttrCompilerVendor, Value: s.CompilerVendor},
		{Name: AttrCompilerTitle, Value: s.CompilerTitle},
		{Name: AttrCompilerVersion, Value: s.CompilerVersion},
	}
}

// AttributeMap returns the main attributes keyed by name
func (s ManifestStamp) AttributeMap() map[string]string {
	attrs := s.Attributes()
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}

// EntryAttributes returns the single entry-scoped marker mapping
func (s ManifestStamp) EntryAttributes() map[string]map[string]string {
	return map[string]map[string]string{
		s.BeanMarkerTarget: {AttrJavaBean: JavaBeanValue},
	}
}

// Manifest converts the stamp into a manifest document
func (s ManifestStamp) Manifest() *Manifest {
	return &Manifest{
		Main: s.Attributes(),
		Sections: []Section{
			{
				Name:       s.BeanMarkerTarget,
				Attributes: []Attribute{{Name: AttrJavaBean, Value: JavaBeanValue}},
			},
		},
	}
}
