package tables

import (
	"fmt"
	"sort"

	"refseq-assign/feature/refseq/models"
)

// OntologyTable resolves GO terms and their ancestors.
type OntologyTable struct {
	terms map[string]OntologyTerm
	depth map[string]int
}

// NewOntologyTable validates the parent links and precomputes term depths.
// Root terms have depth 1; every other term sits one below its deepest parent.
func NewOntologyTable(terms map[string]OntologyTerm) (*OntologyTable, error) {
	o := &OntologyTable{terms: terms, depth: make(map[string]int, len(terms))}
	for id, term := range terms {
		for _, p := range term.Parents {
			if _, ok := terms[p]; !ok {
				return nil, fmt.Errorf("ontology term %s has unknown parent %s", id, p)
			}
		}
	}
	for id := range terms {
		if _, err := o.termDepth(id, map[string]bool{}); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *OntologyTable) termDepth(id string, visiting map[string]bool) (int, error) {
	if d, ok := o.depth[id]; ok {
		return d, nil
	}
	if visiting[id] {
		return 0, fmt.Errorf("ontology cycle through %s", id)
	}
	visiting[id] = true

	d := 1
	for _, p := range o.terms[id].Parents {
		pd, err := o.termDepth(p, visiting)
		if err != nil {
			return 0, err
		}
		if pd+1 > d {
			d = pd + 1
		}
	}
	o.depth[id] = d
	return d, nil
}

// TermExists reports whether id is a known term.
func (o *OntologyTable) TermExists(id string) bool {
	_, ok := o.terms[id]
	return ok
}

// Lineage returns the given terms and all their ancestors ordered by depth then id.
func (o *OntologyTable) Lineage(ids []string) []models.OntologyLineageNode {
	seen := make(map[string]struct{})
	var stack []string
	for _, id := range ids {
		if o.TermExists(id) {
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		stack = append(stack, o.terms[id].Parents...)
	}

	out := make([]models.OntologyLineageNode, 0, len(seen))
	for id := range seen {
		out = append(out, models.OntologyLineageNode{Depth: o.depth[id], ID: id, Name: o.terms[id].Name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth < out[j].Depth
		}
		return out[i].ID < out[j].ID
	})
	return out
}
