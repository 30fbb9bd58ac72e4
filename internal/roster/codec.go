package roster

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/zaqqye/evaluasi_backend/internal/models"
	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

// Decode parses a persisted roster blob. Anything that is not an array of
// students with unique ids is reported as ErrSnapshotCorrupt.
func Decode(data []byte) (models.Roster, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not a JSON array", apperrors.ErrSnapshotCorrupt)
	}

	var r models.Roster
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSnapshotCorrupt, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSnapshotCorrupt, err)
	}

	for i := range r {
		if r[i].Scores == nil {
			r[i].Scores = map[string]models.Scores{}
		}
	}
	if r == nil {
		r = models.Roster{}
	}
	return r, nil
}

func Encode(r models.Roster) ([]byte, error) {
	if r == nil {
		r = models.Roster{}
	}
	return json.Marshal(r)
}
