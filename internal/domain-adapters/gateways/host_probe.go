package gateways

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
)

// hostProbe reads compiler identity from the Go runtime
type hostProbe struct {
	compiler  string
	goos      string
	goarch    string
	version   func() string
	buildInfo func() (*debug.BuildInfo, bool)
}

// NewHostProbe creates a probe for the running toolchain
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewHostProbe() *hostProbe {
	return &hostProbe{
		compiler:  runtime.Compiler,
		goos:      runtime.GOOS,
		goarch:    runtime.GOARCH,
		version:   runtime.Version,
		buildInfo: debug.ReadBuildInfo,
	}
}

// CompilerInfo returns the vendor, runtime name and version of the toolchain
func (p *hostProbe) CompilerInfo() entities.CompilerInfo {
	return entities.CompilerInfo{
		Vendor:  p.vendor(),
		Title:   fmt.Sprintf("Go Runtime Environment (%s/%s)", p.goos, p.goarch),
		Version: p.runtimeVersion(),
	}
}

func (p *hostProbe) vendor() string {
	switch p.compiler {
	case "gc":
		return "The Go Authors"
	case "gccgo":
		return "GNU Project"
	case "":
		return entities.UnknownValue
	default:
		return p.compiler
	}
}

func (p *hostProbe) runtimeVersion() string {
	if v := strings.TrimSpace(p.version()); v != "" {
		return v
	}
	if info, ok := p.buildInfo(); ok && info.GoVersion != "" {
		return info.GoVersion
	}
	return entities.UnknownValue
}
