package history

import (
	"github.com/rs/zerolog/log"

	"gymdesk/internal/entities"
)

// Guard captures one mutation for the operation log. Acquire it before the
// mutation with the pre-image, mark it committed with the post-image once
// the write succeeds, and defer Finish so it fires exactly once on every
// exit path. An abandoned guard logs nothing.
type Guard struct {
	svc         *Service
	kind        entities.OperationKind
	table       string
	recordID    int64
	before      string
	after       string
	description string
	committed   bool
	fired       bool
}

// Begin acquires a guard holding the pre-image. Pass nil for inserts.
func (s *Service) Begin(kind entities.OperationKind, table string, recordID int64, before any) *Guard {
	return &Guard{
		svc:      s,
		kind:     kind,
		table:    table,
		recordID: recordID,
		before:   Snapshot(before),
	}
}

// Commit marks the mutation as successful. The record id is taken again
// here because inserts only learn theirs after the write.
func (g *Guard) Commit(recordID int64, after any, description string) {
	g.recordID = recordID
	g.after = Snapshot(after)
	g.description = description
	g.committed = true
}

// Finish appends the log entry if the guard was committed. Logging
// failures are swallowed with a warning: history capture never blocks the
// primary mutation.
func (g *Guard) Finish() {
	if g.fired || !g.committed {
		g.fired = true
		return
	}
	g.fired = true
	entry := &entities.LogEntry{
		Kind:        g.kind,
		TableName:   g.table,
		RecordID:    g.recordID,
		Before:      g.before,
		After:       g.after,
		Description: g.description,
	}
	if _, err := g.svc.repo.Append(entry); err != nil {
		log.Warn().Err(err).Str("table", g.table).Int64("record_id", g.recordID).
			Msg("failed to record operation history")
	}
}
