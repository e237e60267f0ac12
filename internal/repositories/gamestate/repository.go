// Package gamestate defines the interface for save-slot persistence
package gamestate

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/oakmund/grindstone/internal/repositories/gamestate Repository

import (
	"context"

	"github.com/oakmund/grindstone/internal/entities"
)

// Repository defines the interface for save-slot persistence.
// One slot holds one complete save bundle.
type Repository interface {
	// Save stores the bundle under the slot, stamping version and saved-at
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Load retrieves the bundle stored under the slot
	// Returns errors.InvalidArgument for an empty slot
	// Returns errors.NotFound if the slot has never been saved
	// Returns errors.Internal for storage failures
	// A corrupted blob is replaced by a fresh default bundle, never an error
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Delete removes the slot (new game). Deleting a missing slot is a no-op
	// Returns errors.InvalidArgument for an empty slot
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the input for saving a bundle
type SaveInput struct {
	Slot   string
	Bundle *entities.SaveBundle
}

// SaveOutput defines the output for saving a bundle
type SaveOutput struct {
}

// LoadInput defines the input for loading a bundle
type LoadInput struct {
	Slot string
}

// LoadOutput defines the output for loading a bundle
type LoadOutput struct {
	Bundle *entities.SaveBundle
}

// DeleteInput defines the input for deleting a slot
type DeleteInput struct {
	Slot string
}

// DeleteOutput defines the output for deleting a slot
type DeleteOutput struct {
	// Empty for now, can be extended later
}
