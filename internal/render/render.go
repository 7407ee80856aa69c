package render

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/employee-directory/internal/domain"
)

// EmptyState is shown when the directory has no entries.
const EmptyState = "No employees found."

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Renderer turns an employee list into display text.
type Renderer func(employees []domain.Employee) (string, error)

// For resolves the renderer for a configured format name.
func For(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return Text, nil
	case FormatYAML:
		return YAML, nil
	default:
		return nil, fmt.Errorf("unsupported render format %q", format)
	}
}

// Text renders a numbered listing:
//
//	Employees (2)
//	1. Alice (Engineer)
//	2. Bob (Designer)
func Text(employees []domain.Employee) (string, error) {
	if len(employees) == 0 {
		return EmptyState, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Employees (%d)", len(employees))
	for i, e := range employees {
		fmt.Fprintf(&b, "\n%d. %s", i+1, displayName(e.Name))
		if p := strings.TrimSpace(e.Profile); p != "" {
			fmt.Fprintf(&b, " (%s)", p)
		}
	}
	return b.String(), nil
}

// YAML renders the list as a YAML document under an "employees" key.
func YAML(employees []domain.Employee) (string, error) {
	if len(employees) == 0 {
		return EmptyState, nil
	}

	doc := struct {
		Employees []domain.Employee `yaml:"employees"`
	}{Employees: employees}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal employees yaml: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

func displayName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return "(unnamed)"
}
