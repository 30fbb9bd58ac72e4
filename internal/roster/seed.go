package roster

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

// Seed persists the default roster when nothing usable is stored yet. With
// force the stored roster is replaced regardless. It reports whether a new
// roster was written.
func Seed(ctx context.Context, s *Store, force bool) (bool, error) {
	if force {
		s.Reset(ctx)
		return true, s.LastSaveErr()
	}

	r, err := s.LoadPersisted(ctx)
	switch {
	case err == nil:
		s.set(r)
		return false, nil
	case errors.Is(err, apperrors.ErrSnapshotNotFound), errors.Is(err, apperrors.ErrSnapshotCorrupt):
		s.Reset(ctx)
		return true, s.LastSaveErr()
	default:
		return false, fmt.Errorf("check existing roster: %w", err)
	}
}
