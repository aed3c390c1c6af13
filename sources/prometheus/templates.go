package prometheus

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// QuerySelectors are the values a query may reference as template fields, e.g.
//
//	sum by (service) (rate(billing_cost_total{ {{ .Selector }} }[{{ .Window }}]))
type QuerySelectors struct {
	Selector string
	Window   string
}

// expandQuery executes query as a template against selectors. Queries without
// template actions are returned unchanged.
func expandQuery(query string, selectors QuerySelectors) (string, error) {
	if !strings.Contains(query, "{{") {
		return query, nil
	}
	tmpl, err := template.New("query").Option("missingkey=error").Parse(query)
	if err != nil {
		return "", fmt.Errorf("invalid query template %q: %w", query, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, selectors); err != nil {
		return "", fmt.Errorf("error preparing query %q: %w", query, err)
	}
	return buf.String(), nil
}
