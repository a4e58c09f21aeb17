// Package tui provides an interactive browser for the stored submissions.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Query reads the stored dataset.
	Query driving.QueryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
