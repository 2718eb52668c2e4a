package manifest

import (
	"path/filepath"
	"testing"
)

func TestValidate_GeneratedManifest(t *testing.T) {
	m := New()
	m.Name = "demo"
	m.SetDependency(Dev, "typescript", "3.6.3")
	data, err := m.Encode()
	if err != nil {
		t.Fatal(err)
	}

	result, err := Validate(PackageDocument, data)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("  %s (keyword=%s)", issue, issue.Keyword)
		}
	}
}

func TestValidate_InvalidManifests(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", `{"version": "0.1.0", "license": "MIT", "dependencies": {}, "devDependencies": {}}`},
		{"uppercase name", `{"name": "Demo", "version": "0.1.0", "license": "MIT", "dependencies": {}, "devDependencies": {}}`},
		{"bad version", `{"name": "demo", "version": "one", "license": "MIT", "dependencies": {}, "devDependencies": {}}`},
		{"non-string dependency", `{"name": "demo", "version": "0.1.0", "license": "MIT", "dependencies": {"react": 16}, "devDependencies": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(PackageDocument, []byte(tt.doc))
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if result.Valid {
				t.Errorf("expected invalid for %s, got valid", tt.name)
			}
			if len(result.Issues) == 0 {
				t.Errorf("expected at least one issue for %s", tt.name)
			}
		})
	}
}

func TestValidate_ScopedName(t *testing.T) {
	doc := `{"name": "@acme/demo", "version": "1.0.0", "license": "MIT", "dependencies": {}, "devDependencies": {}}`
	result, err := Validate(PackageDocument, []byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Valid {
		t.Errorf("scoped name should be valid: %v", result.Issues)
	}
}

func TestValidate_TSConfig(t *testing.T) {
	c, err := DefaultTSConfig()
	if err != nil {
		t.Fatal(err)
	}
	data, _ := c.Encode()
	result, err := Validate(TSConfigDocument, data)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !result.Valid {
		t.Errorf("default tsconfig invalid: %v", result.Issues)
	}

	bad := []byte(`{"compilerOptions": {"target": "ES2040", "module": "commonjs"}}`)
	result, err = Validate(TSConfigDocument, bad)
	if err != nil {
		t.Fatal(err)
	}
	if result.Valid {
		t.Error("expected invalid target to fail validation")
	}
}

func TestValidate_InvalidJSON(t *testing.T) {
	if _, err := Validate(PackageDocument, []byte("{not json")); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestValidate_UnknownDocument(t *testing.T) {
	if _, err := Validate("lockfile", []byte("{}")); err == nil {
		t.Fatal("expected error for unknown document, got nil")
	}
}

func TestValidateFile_Missing(t *testing.T) {
	if _, err := ValidateFile(PackageDocument, filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
