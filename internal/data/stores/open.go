package stores

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskr/internal/data/db"
)

// OpenDB opens the database in dataDir. A corrupt file is moved aside and a
// fresh database is created in its place, so the task list starts empty
// instead of failing.
func OpenDB(dataDir string, opts db.OpenOptions, logger zerolog.Logger) (*db.DB, error) {
	database, err := db.Open(dataDir, opts)
	if err == nil {
		return database, nil
	}

	if !IsCorruptionError(err) {
		return nil, err
	}

	logger.Warn().Err(err).Str("data_dir", dataDir).Msg("database corrupt, moving it aside")
	if rerr := RecoverFromCorruption(dataDir); rerr != nil {
		return nil, fmt.Errorf("recover from corruption: %w", rerr)
	}

	return db.Open(dataDir, opts)
}
