package deploy

import (
	"context"

	"github.com/penwyp/codeup/internal/errors"
)

// DbImport would load a SQL dump into the stage database. The hosting target
// offers no import endpoint, so it always fails.
func DbImport(ctx context.Context, file string) error {
	msg := "db import"
	if file != "" {
		msg += " " + file
	}
	return errors.Wrap(errors.ErrTypeNotSupported, msg, errors.ErrNotSupported)
}
