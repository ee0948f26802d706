// Package nvra parses the name-version-release-architecture identity
// tuple out of an RPM filename, used by the Resolver's RPM branch (§4.6
// step h).
package nvra

import (
	"fmt"
	"strings"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
)

// Parse extracts NVRA from an RPM filename of the canonical
// "name-version-release.arch.rpm" form. Any directory prefix or "!/"
// nested-archive prefix is stripped first.
func Parse(filename string) (model.NVRA, error) {
	base := filename
	if idx := strings.LastIndex(base, "!/"); idx >= 0 {
		base = base[idx+2:]
	}
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".rpm")
	if base == filename {
		return model.NVRA{}, fmt.Errorf("nvra: %q is not an .rpm filename", filename)
	}

	dot := strings.LastIndex(base, ".")
	if dot < 0 {
		return model.NVRA{}, fmt.Errorf("nvra: %q has no architecture suffix", base)
	}
	arch := base[dot+1:]
	nvr := base[:dot]

	lastDash := strings.LastIndex(nvr, "-")
	if lastDash < 0 {
		return model.NVRA{}, fmt.Errorf("nvra: %q has no release component", nvr)
	}
	release := nvr[lastDash+1:]
	nameVersion := nvr[:lastDash]

	prevDash := strings.LastIndex(nameVersion, "-")
	if prevDash < 0 {
		return model.NVRA{}, fmt.Errorf("nvra: %q has no version component", nameVersion)
	}
	name := nameVersion[:prevDash]
	version := nameVersion[prevDash+1:]

	return model.NVRA{Name: name, Version: version, Release: release, Arch: arch}, nil
}
