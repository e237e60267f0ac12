// Package errors provides structured error handling for grindstone.
//
// It provides:
//   - Structured errors with codes, messages, and metadata
//   - Error context preservation through wrapping
//   - Validation error helpers for component Config validation
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("save slot not found")
//	err := errors.InvalidArgumentf("invalid enemy level: %d", level)
//
// Adding metadata:
//
//	err := errors.NotFound("save slot not found").
//	    WithMeta("slot_id", slotID)
//
// Wrapping errors:
//
//	if err := repo.Load(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load game state")
//	}
//
// # Validation
//
// Component configs accumulate field errors through the builder:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Source == nil {
//	    vb.RequiredField("Source")
//	}
//	return vb.Build()
package errors
