package wire

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/annolab/geotag/internal/core/domain"
)

// GeoEntity is the wire form of a GeoNames record.
type GeoEntity struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	FeatureClass string  `json:"feature_class"`
	FeatureCode  string  `json:"feature_code"`
	CountryCode  string  `json:"country_code"`
	Adm1         string  `json:"adm1"`
	Adm2         string  `json:"adm2"`
	Adm3         string  `json:"adm3"`
	Adm4         string  `json:"adm4"`
	Elevation    *int    `json:"elevation,omitempty"`
}

// ToDomain converts the wire entity to its domain form.
func (e *GeoEntity) ToDomain() domain.GeoEntity {
	return domain.GeoEntity{
		ID:           e.ID,
		Name:         e.Name,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		FeatureClass: e.FeatureClass,
		FeatureCode:  e.FeatureCode,
		CountryCode:  e.CountryCode,
		Adm1:         e.Adm1,
		Adm2:         e.Adm2,
		Adm3:         e.Adm3,
		Adm4:         e.Adm4,
		Elevation:    e.Elevation,
	}
}

// Modification is the wire form of the document-level audit record.
// Timestamp is unix seconds.
type Modification struct {
	User      string `json:"user"`
	Timestamp int64  `json:"timestamp"`
	Comment   string `json:"comment"`
}

// ToDomain converts the wire modification to its domain form.
func (m *Modification) ToDomain() domain.DocumentModification {
	return domain.DocumentModification{
		User:      m.User,
		Timestamp: time.Unix(m.Timestamp, 0).UTC(),
		Comment:   m.Comment,
	}
}

// ResultEntry pairs an echoed reference with its matched entity.
type ResultEntry struct {
	Reference string     `json:"reference"`
	Entry     *GeoEntity `json:"entry"`
}

// ResultEnvelope is the inbound response envelope.
type ResultEnvelope struct {
	Modification *Modification `json:"modification"`
	Results      []ResultEntry `json:"results"`
}

// DecodeResults parses the inbound bytes as a result envelope. It rejects
// invalid UTF-8, invalid JSON, a missing modification record, and result
// entries missing a reference or an entry object. A nil Results member
// decodes as empty.
func DecodeResults(payload []byte) (*ResultEnvelope, error) {
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%w: payload is not valid UTF-8", domain.ErrMalformedResponse)
	}

	var envelope ResultEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if envelope.Modification == nil {
		return nil, fmt.Errorf("%w: missing modification record", domain.ErrMalformedResponse)
	}
	for i := range envelope.Results {
		if envelope.Results[i].Reference == "" {
			return nil, fmt.Errorf("%w: result %d has no reference", domain.ErrMalformedResponse, i)
		}
		if envelope.Results[i].Entry == nil {
			return nil, fmt.Errorf("%w: result %d has no entry", domain.ErrMalformedResponse, i)
		}
	}
	if envelope.Results == nil {
		envelope.Results = []ResultEntry{}
	}
	return &envelope, nil
}
