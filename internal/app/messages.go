package app

import (
	"time"

	"github.com/diffdeck/diffdeck/internal/models"
)

// diffLoadedMsg carries a freshly parsed working-tree diff.
type diffLoadedMsg struct {
	diffs        []models.FileDiff
	statusByPath map[string]models.FileStatus
}

// repoInfoMsg carries repository metadata for the header.
type repoInfoMsg struct {
	info models.RepoInfo
}

// watchTickMsg reports a debounced filesystem change.
type watchTickMsg struct {
	at time.Time
}

// errMsg wraps an asynchronous failure.
type errMsg struct {
	err error
}
