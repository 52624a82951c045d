package assign

import (
	"errors"
	"fmt"
)

// ErrorKind classifies problems found while processing a record.
type ErrorKind int

const (
	// KindStructuralInput means a required member is absent or malformed. It is the
	// only kind that makes a stage report failure.
	KindStructuralInput ErrorKind = iota + 1
	// KindUnresolvedReference means an accession or term is unknown to a provider.
	KindUnresolvedReference
	// KindAmbiguousMapping means a secondary match could not be narrowed to one accession.
	KindAmbiguousMapping
	// KindChimericConflict means a gene name merge was skipped for a multi-source entity.
	KindChimericConflict
)

// Sentinels for errors.Is matching against *Error values.
var (
	ErrStructuralInput     = errors.New("structural input error")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrAmbiguousMapping    = errors.New("ambiguous mapping")
	ErrChimericConflict    = errors.New("chimeric conflict")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindStructuralInput:
		return ErrStructuralInput
	case KindUnresolvedReference:
		return ErrUnresolvedReference
	case KindAmbiguousMapping:
		return ErrAmbiguousMapping
	case KindChimericConflict:
		return ErrChimericConflict
	default:
		return nil
	}
}

// String returns the snake case name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindStructuralInput:
		return "structural_input"
	case KindUnresolvedReference:
		return "unresolved_reference"
	case KindAmbiguousMapping:
		return "ambiguous_mapping"
	case KindChimericConflict:
		return "chimeric_conflict"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its name.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	for _, kind := range []ErrorKind{KindStructuralInput, KindUnresolvedReference, KindAmbiguousMapping, KindChimericConflict} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", text)
}

// Error describes one problem with a record.
type Error struct {
	Kind      ErrorKind `json:"kind"`
	EntityKey string    `json:"entity_key"`
	// Subject is the member or identifier the problem is about (e.g. an accession).
	Subject string `json:"subject,omitempty"`
	Detail  string `json:"detail"`
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s: %s", e.EntityKey, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s: %s", e.EntityKey, e.Kind, e.Subject, e.Detail)
}

// Unwrap returns the sentinel of the error kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// Report is the outcome of one stage over one record.
type Report struct {
	Stage     string `json:"stage"`
	EntityKey string `json:"entity_key"`
	// Err is the structural failure that stopped the stage, nil on success.
	Err *Error `json:"error,omitempty"`
	// Diagnostics are the non-fatal problems absorbed by the stage.
	Diagnostics []*Error `json:"diagnostics,omitempty"`
}

func newReport(stage, entityKey string) *Report {
	return &Report{Stage: stage, EntityKey: entityKey}
}

// OK reports whether the stage completed without a structural failure.
func (r *Report) OK() bool {
	return r.Err == nil
}

func (r *Report) note(kind ErrorKind, subject, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, &Error{
		Kind:      kind,
		EntityKey: r.EntityKey,
		Subject:   subject,
		Detail:    fmt.Sprintf(format, args...),
	})
}

func (r *Report) fail(subject, format string, args ...any) *Error {
	r.Err = &Error{
		Kind:      KindStructuralInput,
		EntityKey: r.EntityKey,
		Subject:   subject,
		Detail:    fmt.Sprintf(format, args...),
	}
	return r.Err
}
