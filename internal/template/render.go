// Package template renders the embedded script and configuration templates
// that make up a run directory. Placeholders are written @NAME with an
// uppercase identifier, so shell variables in the same files never collide
// with them and survive rendering untouched.
package template

import (
	"embed"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/clusterside/sparklaunch/internal/utils"
)

//go:embed templates/*.tmpl
var assets embed.FS

// Bindings maps placeholder names to their replacement text.
type Bindings map[string]string

var placeholderRe = regexp.MustCompile(`@([A-Z][A-Z0-9_]*)`)

// Source returns the raw text of a named template.
func Source(name string) (string, error) {
	data, err := assets.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return "", NewTemplateError(name, ErrTemplateNotFound)
	}
	return string(data), nil
}

// Names returns every available template name, sorted.
func Names() []string {
	entries, err := assets.ReadDir("templates")
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tmpl"))
	}
	sort.Strings(names)
	return names
}

// Placeholders returns the distinct placeholder names in text, in order of
// first appearance.
func Placeholders(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Expand substitutes every placeholder in text from bindings. When any
// placeholder has no binding, the expansion is discarded and the missing
// names are returned sorted. Replacement values are inserted verbatim and
// never re-scanned. Bindings without a matching placeholder are ignored.
func Expand(text string, bindings Bindings) (string, []string) {
	missingSet := make(map[string]bool)

	out := placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1:]
		if value, ok := bindings[name]; ok {
			return value
		}
		missingSet[name] = true
		return m
	})

	if len(missingSet) > 0 {
		missing := make([]string, 0, len(missingSet))
		for name := range missingSet {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return "", missing
	}

	return out, nil
}

// RenderText expands a named template without touching the filesystem.
func RenderText(name string, bindings Bindings) (string, error) {
	text, err := Source(name)
	if err != nil {
		return "", err
	}

	out, missing := Expand(text, bindings)
	if len(missing) > 0 {
		return "", &TemplateError{Template: name, Missing: missing, Err: ErrMissingBinding}
	}

	return out, nil
}

// Render expands a named template and writes it to outputPath. Nothing is
// written unless every placeholder resolves and the parent directory already
// exists. Rendering the same template with the same bindings is repeatable
// byte for byte. Marking scripts executable is the caller's separate step.
func Render(name, outputPath string, bindings Bindings) error {
	out, err := RenderText(name, bindings)
	if err != nil {
		return err
	}

	if !utils.DirExists(filepath.Dir(outputPath)) {
		return &TemplateError{Template: name, Output: outputPath, Err: ErrOutputDirMissing}
	}

	if err := os.WriteFile(outputPath, []byte(out), utils.PermFile); err != nil {
		return &TemplateError{Template: name, Output: outputPath, Err: err}
	}

	return nil
}
