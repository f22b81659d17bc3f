package storage

import (
	"github.com/vovakirdan/collide/internal/collision"
)

// journalBatch is how many events a Journal buffers before writing.
const journalBatch = 512

// Journal records every collision of one run. It implements collision.Sink,
// so it can be attached directly to a detector.
//
// A sink cannot fail, so the first write error is kept and every later event
// is dropped. Flush reports it.
type Journal struct {
	store *Store
	runID string
	buf   []collision.Event
	err   error
}

// NewJournal returns a journal appending to runID.
func (s *Store) NewJournal(runID string) *Journal {
	return &Journal{
		store: s,
		runID: runID,
		buf:   make([]collision.Event, 0, journalBatch),
	}
}

// RunID returns the run the journal writes to.
func (j *Journal) RunID() string {
	return j.runID
}

// Collision implements collision.Sink.
func (j *Journal) Collision(e collision.Event) {
	if j.err != nil {
		return
	}
	j.buf = append(j.buf, e)
	if len(j.buf) >= journalBatch {
		j.write()
	}
}

// Flush writes any buffered events and returns the first error the journal
// hit.
func (j *Journal) Flush() error {
	if j.err == nil {
		j.write()
	}
	return j.err
}

func (j *Journal) write() {
	j.err = j.store.RecordCollisions(j.runID, j.buf)
	j.buf = j.buf[:0]
}
