package tables

import (
	"sort"
	"strings"

	"refseq-assign/feature/refseq/models"
)

// LongestAlignments returns, for each accession aligned to any of the given
// chains, the segments of the chain with the longest total aligned length.
// Results are sorted by accession and regions by entity position.
func (t *Tables) LongestAlignments(structureID string, chainIDs []string) []models.FallbackAlignment {
	segments := t.snap.SIFTS[strings.ToLower(structureID)]
	if len(segments) == 0 || len(chainIDs) == 0 {
		return nil
	}
	chains := make(map[string]struct{}, len(chainIDs))
	for _, c := range chainIDs {
		chains[c] = struct{}{}
	}

	type chainKey struct{ accession, chain string }
	total := make(map[chainKey]int)
	for _, s := range segments {
		if _, ok := chains[s.Chain]; !ok {
			continue
		}
		total[chainKey{s.Accession, s.Chain}] += s.Length
	}

	best := make(map[string]string)
	for k, n := range total {
		cur, ok := best[k.accession]
		if !ok {
			best[k.accession] = k.chain
			continue
		}
		curLen := total[chainKey{k.accession, cur}]
		if n > curLen || (n == curLen && k.chain < cur) {
			best[k.accession] = k.chain
		}
	}

	out := make([]models.FallbackAlignment, 0, len(best))
	for acc, chain := range best {
		fa := models.FallbackAlignment{Accession: acc}
		for _, s := range segments {
			if s.Accession == acc && s.Chain == chain {
				fa.Regions = append(fa.Regions, models.AlignedRegion{EntityBegSeqID: s.EntityBeg, RefBegSeqID: s.RefBeg, Length: s.Length})
			}
		}
		sort.Slice(fa.Regions, func(i, j int) bool { return fa.Regions[i].EntityBegSeqID < fa.Regions[j].EntityBegSeqID })
		out = append(out, fa)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Accession < out[j].Accession })
	return out
}
