package reading

import (
	"context"
	"fmt"

	"github.com/rnwolfe/mates/internal/config"
)

// Open returns the backend selected by cfg.Source.Kind.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Source.Kind {
	case "", config.SourceSQLite:
		return OpenSQLite()
	case config.SourceFirestore:
		return NewFirestoreSource(ctx, cfg.Source)
	default:
		return nil, fmt.Errorf("unknown source kind %q (want %s or %s)",
			cfg.Source.Kind, config.SourceSQLite, config.SourceFirestore)
	}
}
