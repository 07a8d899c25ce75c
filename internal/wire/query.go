package wire

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/annolab/geotag/internal/core/domain"
)

// QueryEntry is one span projected into the outbound query. Reference is
// the decimal form of the call-scoped integer handle.
type QueryEntry struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// Filter restricts matches by GeoNames attributes. Empty fields are
// omitted from the wire.
type Filter struct {
	FeatureClass string `json:"feature_class,omitempty"`
	FeatureCode  string `json:"feature_code,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// Query is the outbound request envelope. Numeric tuning values are
// serialized as strings, matching the service contract.
type Query struct {
	Queries         []QueryEntry `json:"queries"`
	Mode            string       `json:"mode"`
	ResultSelection string       `json:"result_selection"`
	Filter          *Filter      `json:"filter,omitempty"`
	MaxDist         string       `json:"max_dist,omitempty"`
	StateLimit      string       `json:"state_limit,omitempty"`
}

// NewQuery shapes a query from validated configuration and the entries
// already minted in table order. cfg must have passed Validate.
func NewQuery(cfg *domain.TagConfig, entries []QueryEntry) *Query {
	if entries == nil {
		entries = []QueryEntry{}
	}
	q := &Query{
		Queries:         entries,
		Mode:            string(cfg.EffectiveMode()),
		ResultSelection: string(cfg.EffectiveSelection()),
	}
	if cfg.Filter != nil {
		q.Filter = &Filter{
			FeatureClass: cfg.Filter.FeatureClass,
			FeatureCode:  cfg.Filter.FeatureCode,
			CountryCode:  cfg.Filter.CountryCode,
		}
	}
	if cfg.EffectiveMode() != domain.ModeFind {
		q.MaxDist = strconv.Itoa(cfg.MaxDist)
	}
	if cfg.EffectiveMode() == domain.ModeLevenshtein && cfg.StateLimit > 0 {
		q.StateLimit = strconv.Itoa(cfg.StateLimit)
	}
	return q
}

// Encode serializes the query as a single UTF-8 JSON document.
func (q *Query) Encode() ([]byte, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return payload, nil
}
