package models

// Clone returns a deep copy of the record. Staged updates applied to the copy never
// alias slices or pointers of the original.
func (r *EntityRecord) Clone() *EntityRecord {
	if r == nil {
		return nil
	}
	c := &EntityRecord{RCSBID: r.RCSBID}

	if r.SourceOrganisms != nil {
		c.SourceOrganisms = make([]SourceOrganism, len(r.SourceOrganisms))
		for i, so := range r.SourceOrganisms {
			c.SourceOrganisms[i] = SourceOrganism{
				ScientificName: so.ScientificName,
				GeneNames:      cloneSlice(so.GeneNames),
				Extra:          cloneExtra(so.Extra),
			}
			if so.NCBITaxonomyID != nil {
				id := *so.NCBITaxonomyID
				c.SourceOrganisms[i].NCBITaxonomyID = &id
			}
		}
	}

	if r.PolymerEntity != nil {
		c.PolymerEntity = &PolymerEntity{
			Description:         r.PolymerEntity.Description,
			EnzymeClassCombined: cloneSlice(r.PolymerEntity.EnzymeClassCombined),
			ECLineage:           cloneSlice(r.PolymerEntity.ECLineage),
			Extra:               cloneExtra(r.PolymerEntity.Extra),
		}
	}

	if ci := r.ContainerIdentifiers; ci != nil {
		c.ContainerIdentifiers = &ContainerIdentifiers{
			EntryID:                      ci.EntryID,
			EntityID:                     ci.EntityID,
			AuthAsymIDs:                  cloneSlice(ci.AuthAsymIDs),
			RelatedAnnotationIdentifiers: cloneSlice(ci.RelatedAnnotationIdentifiers),
			RelatedAnnotationLineage:     cloneSlice(ci.RelatedAnnotationLineage),
			Extra:                        cloneExtra(ci.Extra),
		}
		if ci.ReferenceSequenceIdentifiers != nil {
			c.ContainerIdentifiers.ReferenceSequenceIdentifiers = make([]ReferenceSequenceIdentifier, len(ci.ReferenceSequenceIdentifiers))
			for i, rsi := range ci.ReferenceSequenceIdentifiers {
				rsi.Extra = cloneExtra(rsi.Extra)
				c.ContainerIdentifiers.ReferenceSequenceIdentifiers[i] = rsi
			}
		}
	}

	if r.Alignments != nil {
		c.Alignments = make([]AlignmentRecord, len(r.Alignments))
		for i, a := range r.Alignments {
			a.AlignedRegions = cloneSlice(a.AlignedRegions)
			a.Extra = cloneExtra(a.Extra)
			c.Alignments[i] = a
		}
	}

	c.Extra = cloneExtra(r.Extra)
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
