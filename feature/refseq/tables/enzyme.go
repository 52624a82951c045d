package tables

import (
	"strings"

	"refseq-assign/feature/refseq/models"
)

// EnzymeTable maps EC class ids at every depth to their names.
type EnzymeTable map[string]string

// Normalize strips an "EC" prefix and whitespace and drops unspecified
// trailing levels, so "EC 3.4.-.-" becomes "3.4".
func (t EnzymeTable) Normalize(code string) string {
	code = strings.TrimSpace(code)
	if len(code) >= 2 && strings.EqualFold(code[:2], "EC") {
		code = strings.TrimLeft(code[2:], " :")
	}
	code = strings.Join(strings.Fields(code), "")

	parts := strings.Split(code, ".")
	n := len(parts)
	for n > 0 && (parts[n-1] == "-" || parts[n-1] == "") {
		n--
	}
	return strings.Join(parts[:n], ".")
}

// Exists reports whether code and every level above it are known EC classes.
func (t EnzymeTable) Exists(code string) bool {
	if code == "" {
		return false
	}
	parts := strings.Split(code, ".")
	for i := range parts {
		if _, ok := t[strings.Join(parts[:i+1], ".")]; !ok {
			return false
		}
	}
	return true
}

// Lineage returns the classes from depth 1 down to code. It stops at the first
// level missing from the enzyme table, so depths never have gaps.
func (t EnzymeTable) Lineage(code string) []models.EnzymeLineageNode {
	if code == "" {
		return nil
	}
	parts := strings.Split(code, ".")
	out := make([]models.EnzymeLineageNode, 0, len(parts))
	for i := range parts {
		id := strings.Join(parts[:i+1], ".")
		name, ok := t[id]
		if !ok {
			break
		}
		out = append(out, models.EnzymeLineageNode{Depth: i + 1, ID: id, Name: name})
	}
	return out
}
