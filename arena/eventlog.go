package arena

import (
	"sync"
	"time"
)

// TickSnapshot is the full replay record for one completed tick: the
// post-tick world, the events that happened during it, and the economy
// snapshot computed from them.
type TickSnapshot struct {
	Tick      int             `json:"tick"`
	World     WorldSnapshot   `json:"world"`
	Events    []Event         `json:"events"`
	Economy   EconomySnapshot `json:"economy"`
	Timestamp time.Time       `json:"timestamp"`
}

// SnapshotLog is the append-only replay archive. Unlike the world's live
// event buffer it is never trimmed; every completed tick stays queryable.
type SnapshotLog struct {
	mu        sync.Mutex
	snapshots []TickSnapshot
}

func NewSnapshotLog() *SnapshotLog {
	return &SnapshotLog{}
}

func (l *SnapshotLog) Record(s TickSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots = append(l.snapshots, s)
}

// AtTick returns the snapshot recorded for the given tick.
func (l *SnapshotLog) AtTick(tick int) (TickSnapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.snapshots {
		if s.Tick == tick {
			return s, true
		}
	}
	return TickSnapshot{}, false
}

func (l *SnapshotLog) Latest() (TickSnapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.snapshots) == 0 {
		return TickSnapshot{}, false
	}
	return l.snapshots[len(l.snapshots)-1], true
}

func (l *SnapshotLog) All() []TickSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]TickSnapshot{}, l.snapshots...)
}

func (l *SnapshotLog) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.snapshots)
}

func (l *SnapshotLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots = nil
}
