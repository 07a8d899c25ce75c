package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/annolab/geotag/internal/core/domain"
)

// documentFile is the JSON shape accepted by `geotag tag --file`.
type documentFile struct {
	ID          string           `json:"id"`
	URI         string           `json:"uri"`
	Text        string           `json:"text"`
	Annotations []annotationLine `json:"annotations"`
}

type annotationLine struct {
	Type  string `json:"type"`
	Begin int    `json:"begin"`
	End   int    `json:"end"`
}

// loadDocument reads a document file and validates annotation offsets
// against the text bounds.
func loadDocument(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document file: %w", err)
	}

	var df documentFile
	if err := json.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parsing document file: %w", err)
	}

	doc := &domain.Document{
		ID:   df.ID,
		URI:  df.URI,
		Text: df.Text,
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.URI == "" {
		doc.URI = path
	}
	for i, a := range df.Annotations {
		if a.Begin < 0 || a.End > len(df.Text) || a.Begin > a.End {
			return nil, fmt.Errorf("annotation %d (%s): offsets [%d,%d) outside text of length %d",
				i, a.Type, a.Begin, a.End, len(df.Text))
		}
		doc.Annotations = append(doc.Annotations, domain.Annotation{
			Type:  a.Type,
			Begin: a.Begin,
			End:   a.End,
		})
	}
	return doc, nil
}
