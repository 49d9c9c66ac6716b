package pkgmgr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PreferenceFileName is the persisted preference document, found under the
// .scope directory of a project (project scope) or the user's home
// directory (global scope).
const PreferenceFileName = "package-manager.json"

// Preference is the persisted package-manager choice.
type Preference struct {
	PackageManager string    `json:"packageManager"`
	SetAt          time.Time `json:"setAt"`
}

// preferencePath returns the preference file location under a scope dir.
func preferencePath(scopeDir string) string {
	return filepath.Join(scopeDir, ".scope", PreferenceFileName)
}

// loadPreference reads a persisted preference. Any failure — absent file,
// bad JSON, empty name — reads as "no preference".
func loadPreference(scopeDir string) (string, bool) {
	data, err := os.ReadFile(preferencePath(scopeDir))
	if err != nil {
		return "", false
	}
	var pref Preference
	if err := json.Unmarshal(data, &pref); err != nil {
		return "", false
	}
	if pref.PackageManager == "" {
		return "", false
	}
	return pref.PackageManager, true
}

// SavePreference persists a package-manager choice under scopeDir. This is
// the one operation in the core allowed to fail loudly: a caller explicitly
// asked for a write, so an unwritable location surfaces as an error.
func SavePreference(scopeDir, name string) error {
	if name == "" {
		return fmt.Errorf("package manager name is empty")
	}

	pref := Preference{PackageManager: name, SetAt: time.Now().UTC()}
	data, err := json.MarshalIndent(pref, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling preference: %w", err)
	}

	path := preferencePath(scopeDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing preference: %w", err)
	}
	return nil
}
