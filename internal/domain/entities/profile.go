package entities

// Profile holds the static literals of a stamp: who publishes the artifact,
// under which title and copyright, and which entry carries the bean marker
type Profile struct {
	Name                 string
	SpecificationVendor  string
	SpecificationTitle   string
	ImplementationVendor string
	ImplementationTitle  string
	ImplementationURL    string
	CopyrightHolder      string
	CopyrightDate        string
	BeanMarkerTarget     string
}

// DefaultProfile returns the Dependency Finder profile
func DefaultProfile() *Profile {
	return &Profile{
		Name:                 "dependencyfinder",
		SpecificationVendor:  "Jean Tessier",
		SpecificationTitle:   "Dependency Finder",
		ImplementationVendor: "Jean Tessier",
		ImplementationTitle:  "Dependency Finder",
		ImplementationURL:    "https://depfind.sourceforge.io/",
		CopyrightHolder:      "Jean Tessier",
		CopyrightDate:        "2001-2025",
		BeanMarkerTarget:     "com/jeantessier/dependencyfinder/gui/DependencyFinder.class",
	}
}
