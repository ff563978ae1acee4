package formatter

import (
	"github.com/bblfsh/uastclient/internal/results"
)

// Formatter writes a run summary. Implementations choose the destination.
type Formatter interface {
	Format(summary *results.Summary) error
}
