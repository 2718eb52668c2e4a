// Package options turns raw command-line input into a validated Options
// value. Validation happens here, before any subprocess or filesystem work.
package options

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/tsinit/internal/license"
)

// EcmaTarget is the compiler output language level.
type EcmaTarget string

// Supported ECMA targets.
const (
	ES3    EcmaTarget = "ES3"
	ES5    EcmaTarget = "ES5"
	ES2015 EcmaTarget = "ES2015"
	ES2016 EcmaTarget = "ES2016"
	ES2017 EcmaTarget = "ES2017"
	ES2018 EcmaTarget = "ES2018"
	ES2019 EcmaTarget = "ES2019"
	ESNext EcmaTarget = "ESNext"
)

// DefaultTarget is used when --es is not given.
const DefaultTarget = ES2015

// Targets returns every accepted ECMA target.
func Targets() []EcmaTarget {
	return []EcmaTarget{ES3, ES5, ES2015, ES2016, ES2017, ES2018, ES2019, ESNext}
}

// ModuleFormat is the compiler module system.
type ModuleFormat string

// Supported module formats.
const (
	CommonJS     ModuleFormat = "commonjs"
	ModuleES2015 ModuleFormat = "es2015"
)

// DefaultModule is used when --module is not given and React is off.
const DefaultModule = CommonJS

// Options is the resolved scaffolding configuration.
type Options struct {
	ProjectName     string
	Dependencies    []string
	DevDependencies []string
	React           bool
	Parcel          bool
	Mobx            bool
	Target          EcmaTarget
	Module          ModuleFormat
	DryRun          bool
	License         license.ID
	// Author overrides the identity lookup when non-empty.
	Author string
}

// Raw is the unvalidated command-line input. Empty strings select defaults.
type Raw struct {
	Args            []string
	Dependencies    []string
	DevDependencies []string
	React           bool
	Parcel          bool
	Mobx            bool
	ES              string
	Module          string
	DryRun          bool
	License         string
	Author          string
}

// InputError reports a violated input constraint.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Resolve validates raw input and applies defaults.
func Resolve(raw Raw) (*Options, error) {
	if len(raw.Args) != 1 {
		return nil, &InputError{
			Field:  "arguments",
			Reason: fmt.Sprintf("must supply exactly one project name, got %d", len(raw.Args)),
		}
	}
	name := strings.TrimSpace(raw.Args[0])
	if name == "" {
		return nil, &InputError{Field: "project name", Reason: "must not be empty"}
	}

	lic, err := ParseLicense(raw.License)
	if err != nil {
		return nil, err
	}
	target, err := ParseTarget(raw.ES)
	if err != nil {
		return nil, err
	}
	module, err := ParseModule(raw.Module)
	if err != nil {
		return nil, err
	}
	if raw.React {
		module = ModuleES2015
	}

	return &Options{
		ProjectName:     name,
		Dependencies:    SplitList(raw.Dependencies),
		DevDependencies: SplitList(raw.DevDependencies),
		React:           raw.React,
		Parcel:          raw.Parcel,
		Mobx:            raw.Mobx,
		Target:          target,
		Module:          module,
		DryRun:          raw.DryRun,
		License:         lic,
		Author:          strings.TrimSpace(raw.Author),
	}, nil
}

// SplitList applies the accumulation rule for repeated list flags: every
// value is split on commas and blank entries are dropped.
func SplitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ParseTarget matches s against the supported ECMA targets, ignoring case.
func ParseTarget(s string) (EcmaTarget, error) {
	if s == "" {
		return DefaultTarget, nil
	}
	for _, t := range Targets() {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", &InputError{Field: "ECMA target", Value: s, Reason: fmt.Sprintf("must be one of %v", Targets())}
}

// ParseModule matches s against the supported module formats, ignoring case.
func ParseModule(s string) (ModuleFormat, error) {
	switch strings.ToLower(s) {
	case "":
		return DefaultModule, nil
	case string(CommonJS):
		return CommonJS, nil
	case string(ModuleES2015):
		return ModuleES2015, nil
	}
	return "", &InputError{Field: "module format", Value: s, Reason: "must be commonjs or es2015"}
}
