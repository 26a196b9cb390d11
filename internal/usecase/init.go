package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// DefaultConfigWriter writes a starter config file.
type DefaultConfigWriter interface {
	// WriteDefault writes a default config if none exists.
	WriteDefault() error
}

// Init is the use case for initializing a tt workspace: create the empty
// store and a starter config. Idempotent.
type Init struct {
	store  domain.StoreInitializer
	config DefaultConfigWriter
}

// NewInit creates a new Init use case.
func NewInit(store domain.StoreInitializer, config DefaultConfigWriter) *Init {
	return &Init{store: store, config: config}
}

// Execute initializes the workspace.
func (uc *Init) Execute(_ context.Context) error {
	if err := uc.store.Initialize(); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	if uc.config != nil {
		if err := uc.config.WriteDefault(); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}
