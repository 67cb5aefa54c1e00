package dataset

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/govmind/decisions-api/pkg/domain/decision"
	"github.com/sirupsen/logrus"
)

const DefaultPageSize = 1000

// Snapshot is an immutable view of the full decisions table at load time.
// Handlers read whichever snapshot is current; Reload swaps in a new one
// wholesale, so a request never observes a half-loaded dataset.
type Snapshot struct {
	Decisions []decision.Decision
	LoadedAt  time.Time
}

func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Decisions) == 0
}

// SearchTexts returns the text each decision is matched against in semantic
// search, in snapshot order.
func (s *Snapshot) SearchTexts() []string {
	texts := make([]string, len(s.Decisions))
	for i, d := range s.Decisions {
		texts[i] = d.SearchText()
	}
	return texts
}

// Columns lists the dataset's column names, for diagnostics.
func Columns() []string {
	return []string{
		"id", "decision_number", "government_number", "decision_date",
		"title", "summary", "content", "url", "created_at", "updated_at",
	}
}

// Loader pages the whole decisions table into memory and keeps the latest
// snapshot behind an atomic pointer.
type Loader struct {
	repo     decision.Repository
	logger   *logrus.Logger
	pageSize int
	current  atomic.Pointer[Snapshot]
}

func NewLoader(repo decision.Repository, pageSize int, logger *logrus.Logger) *Loader {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Loader{
		repo:     repo,
		logger:   logger,
		pageSize: pageSize,
	}
}

// Current returns the latest snapshot, or nil before the first successful
// load.
func (l *Loader) Current() *Snapshot {
	return l.current.Load()
}

// Reload pages through the entire table and swaps in the resulting snapshot.
// On failure the previous snapshot stays current.
func (l *Loader) Reload(ctx context.Context) (*Snapshot, error) {
	var all []decision.Decision
	offset := 0

	for {
		page, err := l.repo.List(ctx, offset, l.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load decisions at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)

		// A short page means the table is exhausted.
		if len(page) < l.pageSize {
			break
		}

		offset += l.pageSize
		l.logger.WithField("loaded", len(all)).Info("loading decisions")
	}

	snapshot := &Snapshot{
		Decisions: all,
		LoadedAt:  time.Now(),
	}
	l.current.Store(snapshot)

	if len(all) == 0 {
		l.logger.Warn("no decisions found in database")
	} else {
		l.logger.WithField("records", len(all)).Info("loaded decisions dataset")
	}
	return snapshot, nil
}
