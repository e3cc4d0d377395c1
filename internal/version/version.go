package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Build information for the tsiface CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Banner renders the version with coloured components, followed by the
// commit and build date when known. Colour follows fatih/color's global
// NoColor switch.
func Banner() string {
	var b strings.Builder
	b.WriteString("tsiface ")
	if v, err := semver.NewVersion(Version); err == nil {
		b.WriteString(versionMajorColor.Sprint(v.Major()))
		b.WriteString(".")
		b.WriteString(versionMinorColor.Sprint(v.Minor()))
		b.WriteString(".")
		b.WriteString(versionPatchColor.Sprint(v.Patch()))
		if pre := v.Prerelease(); pre != "" {
			b.WriteString("-" + pre)
		}
	} else {
		b.WriteString(Version)
	}
	if GitCommit != "" {
		fmt.Fprintf(&b, " (%s)", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, " built %s", BuildDate)
	}
	return b.String()
}

// Satisfies reports whether Version meets constraint, e.g. ">= 0.1, < 2".
// Prerelease builds are compared by their release part.
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(Version)
	if err != nil {
		return false, fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	if v.Prerelease() != "" {
		release, err := v.SetPrerelease("")
		if err != nil {
			return false, err
		}
		v = &release
	}
	return c.Check(v), nil
}
