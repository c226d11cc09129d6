// Package entities defines core domain models and data structures.
package entities

// Artifact represents a packaged build artifact that receives a manifest stamp
type Artifact struct {
	Name    string
	Version string
	Path    string
	Type    string // "jar", "manifest"
}
