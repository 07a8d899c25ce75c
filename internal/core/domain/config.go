package domain

import "fmt"

// SearchMode selects the gazetteer matching strategy.
type SearchMode string

const (
	// ModeFind looks up the exact covered text.
	ModeFind SearchMode = "find"

	// ModeStartsWith matches entries the covered text is a prefix of.
	ModeStartsWith SearchMode = "starts_with"

	// ModeFuzzy matches entries containing the covered text as a subsequence.
	ModeFuzzy SearchMode = "fuzzy"

	// ModeLevenshtein matches entries within an edit distance budget.
	ModeLevenshtein SearchMode = "levenshtein"
)

// ResultSelection controls how many matches per query entry the service
// returns.
type ResultSelection string

const (
	// SelectFirst returns only the best match per query entry.
	SelectFirst ResultSelection = "first"

	// SelectAll returns every match per query entry.
	SelectAll ResultSelection = "all"
)

// ResultFilter restricts matches by GeoNames attributes. Empty fields
// are not applied; the filter is passed to the service verbatim.
type ResultFilter struct {
	FeatureClass string
	FeatureCode  string
	CountryCode  string
}

// TagConfig is the configuration surface for one tagging call.
// The zero value is valid and means: all spans of no type (no candidates),
// exact matching, first result only.
type TagConfig struct {
	// AnnotationType selects which document spans are lookup candidates.
	// An unknown type yields zero candidates, not an error.
	AnnotationType string

	// Mode is the matching strategy (default ModeFind).
	Mode SearchMode

	// ResultSelection picks one or all matches (default SelectFirst).
	ResultSelection ResultSelection

	// Filter optionally restricts matches by GeoNames attributes.
	Filter *ResultFilter

	// MaxDist bounds the match distance. Required for every mode except
	// ModeFind; zero means unset.
	MaxDist int

	// StateLimit caps the transducer state count. Only meaningful for
	// ModeLevenshtein; zero means unset.
	StateLimit int
}

// EffectiveMode returns Mode with the documented default applied.
func (c *TagConfig) EffectiveMode() SearchMode {
	if c.Mode == "" {
		return ModeFind
	}
	return c.Mode
}

// EffectiveSelection returns ResultSelection with the documented default
// applied.
func (c *TagConfig) EffectiveSelection() ResultSelection {
	if c.ResultSelection == "" {
		return SelectFirst
	}
	return c.ResultSelection
}

// Validate checks mode constraints. It is called once at query-build
// entry, before any bytes are emitted.
func (c *TagConfig) Validate() error {
	mode := c.EffectiveMode()
	switch mode {
	case ModeFind, ModeStartsWith, ModeFuzzy, ModeLevenshtein:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}

	if mode != ModeFind && c.MaxDist <= 0 {
		return fmt.Errorf("%w: mode %q requires max_dist", ErrInvalidConfig, mode)
	}

	switch c.EffectiveSelection() {
	case SelectFirst, SelectAll:
	default:
		return fmt.Errorf("%w: unknown result_selection %q", ErrInvalidConfig, c.ResultSelection)
	}

	if c.StateLimit < 0 {
		return fmt.Errorf("%w: state_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
