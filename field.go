package homespace

import "strings"

// RawFragments is the sequence of raw text strings extracted from a
// document for one field, in document order, before any normalization.
type RawFragments []string

// Normalizer is one text transform in a field's input chain. The crawl
// context supplies per-source settings such as the datetime format.
type Normalizer func(text string, ctx CrawlContext) (string, error)

// TrimSpacing collapses and trims whitespace. Never fails.
func TrimSpacing(text string, _ CrawlContext) (string, error) {
	return NormalizeSpace(text), nil
}

// ParseDatetime reformats a source-serialized datetime to ISO-8601
// using the context's format.
func ParseDatetime(text string, ctx CrawlContext) (string, error) {
	return ReformatDatetime(text, ctx.DatetimeFormat)
}

// Merge combines the normalized fragments of one field into its final
// value.
type Merge func(fragments []string) string

// TakeFirst keeps the first fragment and ignores the rest.
func TakeFirst() Merge {
	return func(fragments []string) string {
		if len(fragments) == 0 {
			return ""
		}
		return fragments[0]
	}
}

// JoinWith concatenates all fragments with the separator, in original
// order.
func JoinWith(sep string) Merge {
	return func(fragments []string) string {
		return strings.Join(fragments, sep)
	}
}

// FieldSpec declares how one record field is produced: an ordered input
// normalization chain applied per fragment, a merge strategy, and a
// default used when nothing was extracted. Specs are defined once per
// record kind and never mutated.
type FieldSpec struct {
	Name    string
	Inputs  []Normalizer
	Output  Merge
	Default string
}

// Resolve runs the field pipeline over raw fragments: each fragment goes
// through the input chain in order, the normalized fragments are merged,
// and an empty result falls back to the field default.
//
// A chain step failure returns a *FieldError tagged with the field name
// and the offending fragment; the caller decides whether to abort the
// record or substitute the default.
func (f FieldSpec) Resolve(fragments RawFragments, ctx CrawlContext) (string, error) {
	normalized := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		value := fragment
		for _, normalize := range f.Inputs {
			var err error
			value, err = normalize(value, ctx)
			if err != nil {
				return "", &FieldError{Field: f.Name, Fragment: fragment, Err: err}
			}
		}
		normalized = append(normalized, value)
	}

	merge := f.Output
	if merge == nil {
		merge = TakeFirst()
	}
	merged := merge(normalized)
	if merged == "" {
		return f.Default, nil
	}
	return merged, nil
}

// Schema is the ordered field set of one record kind.
type Schema struct {
	// Kind names the record kind for logs.
	Kind string

	// Identity is the field whose absence makes a record invalid.
	Identity string

	// Fields lists every field of the record, in output order.
	Fields []FieldSpec
}
