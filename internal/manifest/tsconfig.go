package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// TSConfigFileName is the compiler configuration file name.
const TSConfigFileName = "tsconfig.json"

//go:embed templates/tsconfig.json
var tsconfigTemplate []byte

// CompilerOptions is the compilerOptions block of tsconfig.json.
type CompilerOptions struct {
	Target                           string `json:"target" yaml:"target"`
	Module                           string `json:"module" yaml:"module"`
	JSX                              string `json:"jsx,omitempty" yaml:"jsx,omitempty"`
	Declaration                      bool   `json:"declaration" yaml:"declaration"`
	OutDir                           string `json:"outDir" yaml:"outDir"`
	Strict                           bool   `json:"strict" yaml:"strict"`
	ESModuleInterop                  bool   `json:"esModuleInterop" yaml:"esModuleInterop"`
	ForceConsistentCasingInFileNames bool   `json:"forceConsistentCasingInFileNames" yaml:"forceConsistentCasingInFileNames"`
}

// TSConfig represents a tsconfig.json document.
type TSConfig struct {
	CompilerOptions CompilerOptions `json:"compilerOptions" yaml:"compilerOptions"`
	Include         []string        `json:"include,omitempty" yaml:"include,omitempty"`
}

// DefaultTSConfig returns a fresh copy of the embedded compiler configuration.
func DefaultTSConfig() (*TSConfig, error) {
	var c TSConfig
	if err := json.Unmarshal(tsconfigTemplate, &c); err != nil {
		return nil, fmt.Errorf("parsing embedded tsconfig template: %w", err)
	}
	return &c, nil
}

// Patch sets the target and module compiler options.
func (c *TSConfig) Patch(target, module string) *TSConfig {
	c.CompilerOptions.Target = target
	c.CompilerOptions.Module = module
	return c
}

// Encode renders c as indented JSON with a trailing newline.
func (c *TSConfig) Encode() ([]byte, error) {
	return encodeJSON(c)
}

// Write encodes c to path, overwriting any existing file.
func (c *TSConfig) Write(path string) error {
	data, err := c.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
