package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// memberNames caches the JSON member names of the typed fields per struct type.
var memberNames sync.Map

func typedMembers(t reflect.Type) []string {
	if v, ok := memberNames.Load(t); ok {
		return v.([]string)
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	memberNames.Store(t, names)
	return names
}

// decodeWithExtra decodes data into typed, a pointer to an alias struct, and returns
// the members none of its fields name. The result is nil when there are none.
func decodeWithExtra(data []byte, typed any) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, typed); err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range typedMembers(reflect.TypeOf(typed).Elem()) {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// encodeWithExtra encodes typed and merges extra into the result. Typed members win.
func encodeWithExtra(typed any, extra map[string]json.RawMessage) ([]byte, error) {
	out, err := json.Marshal(typed)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return out, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(out, &members); err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(extra)+len(members))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range members {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	c := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		c[k] = append(json.RawMessage(nil), v...)
	}
	return c
}

type (
	entityRecordAlias                EntityRecord
	sourceOrganismAlias              SourceOrganism
	polymerEntityAlias               PolymerEntity
	containerIdentifiersAlias        ContainerIdentifiers
	referenceSequenceIdentifierAlias ReferenceSequenceIdentifier
	alignmentRecordAlias             AlignmentRecord
)

// UnmarshalJSON decodes the typed members and keeps the rest in Extra.
func (r *EntityRecord) UnmarshalJSON(data []byte) error {
	var typed entityRecordAlias
	extra, err := decodeWithExtra(data, &typed)
	if err != nil {
		return err
	}
	typed.Extra = extra
	*r = EntityRecord(typed)
	return nil
}

// MarshalJSON writes the typed members merged with Extra.
func (r EntityRecord) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(entityRecordAlias(r), r.Extra)
}

func (s *SourceOrganism) UnmarshalJSON(data []byte) error {
	var typed sourceOrganismAlias
	extra, err := decodeWithExtra(data, &typed)
	if err != nil {
		return err
	}
	typed.Extra = extra
	*s = SourceOrganism(typed)
	return nil
}

func (s SourceOrganism) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(sourceOrganismAlias(s), s.Extra)
}

func (p *PolymerEntity) UnmarshalJSON(data []byte) error {
	var typed polymerEntityAlias
	extra, err := decodeWithExtra(data, &typed)
	if err != nil {
		return err
	}
	typed.Extra = extra
	*p = PolymerEntity(typed)
	return nil
}

func (p PolymerEntity) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(polymerEntityAlias(p), p.Extra)
}

func (c *ContainerIdentifiers) UnmarshalJSON(data []byte) error {
	var typed containerIdentifiersAlias
	extra, err := decodeWithExtra(data, &typed)
	if err != nil {
		return err
	}
	typed.Extra = extra
	*c = ContainerIdentifiers(typed)
	return nil
}

// MarshalJSON keeps an emptied related annotation list as [] rather than dropping it.
func (c ContainerIdentifiers) MarshalJSON() ([]byte, error) {
	extra := c.Extra
	if c.RelatedAnnotationIdentifiers != nil && len(c.RelatedAnnotationIdentifiers) == 0 {
		extra = make(map[string]json.RawMessage, len(c.Extra)+1)
		for k, v := range c.Extra {
			extra[k] = v
		}
		extra["related_annotation_identifiers"] = json.RawMessage("[]")
	}
	return encodeWithExtra(containerIdentifiersAlias(c), extra)
}

func (r *ReferenceSequenceIdentifier) UnmarshalJSON(data []byte) error {
	var typed referenceSequenceIdentifierAlias
	extra, err := decodeWithExtra(data, &typed)
	if err != nil {
		return err
	}
	typed.Extra = extra
	*r = ReferenceSequenceIdentifier(typed)
	return nil
}

func (r ReferenceSequenceIdentifier) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(referenceSequenceIdentifierAlias(r), r.Extra)
}

func (a *AlignmentRecord) UnmarshalJSON(data []byte) error {
	var typed alignmentRecordAlias
	extra, err := decodeWithExtra(data, &typed)
	if err != nil {
		return err
	}
	typed.Extra = extra
	*a = AlignmentRecord(typed)
	return nil
}

func (a AlignmentRecord) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(alignmentRecordAlias(a), a.Extra)
}
