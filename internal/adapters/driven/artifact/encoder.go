package artifact

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
)

// Ensure Encoder implements the interface.
var _ driven.SubmissionEncoder = (*Encoder)(nil)

// Encoder writes submissions as a JSON array or a YAML sequence.
type Encoder struct{}

// NewEncoder creates a submission encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes subs to w in the requested format.
func (e *Encoder) Encode(w io.Writer, format domain.ExportFormat, subs []domain.Submission) error {
	if subs == nil {
		subs = []domain.Submission{}
	}

	switch format {
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(subs)
	case domain.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(subs); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
