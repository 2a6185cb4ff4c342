// Package replay answers historical queries against the tick archive. It
// reconstructs nothing: every completed tick was recorded as a full snapshot,
// so replay is lookup and filtering, never re-simulation.
package replay

import "arena-lite/arena"

// KeyMoment is one timeline highlight: a resolution, a fall, an alliance or
// a human arrival.
type KeyMoment struct {
	Tick    int             `json:"tick"`
	Type    arena.EventType `json:"type"`
	Message string          `json:"message"`
}

// Timeline is the full replay index.
type Timeline struct {
	TotalTicks int                  `json:"totalTicks"`
	KeyMoments []KeyMoment          `json:"keyMoments"`
	Snapshots  []arena.TickSnapshot `json:"snapshots"`
}

// StateAtTick returns the archived snapshot for one tick.
func StateAtTick(log *arena.SnapshotLog, tick int) (arena.TickSnapshot, bool) {
	return log.AtTick(tick)
}

// EventsForTick returns a copy of the events recorded during one tick, or an
// empty slice for an unarchived tick. The archive's own slice is never handed
// out.
func EventsForTick(log *arena.SnapshotLog, tick int) []arena.Event {
	s, ok := log.AtTick(tick)
	if !ok {
		return []arena.Event{}
	}
	return append([]arena.Event{}, s.Events...)
}

// BuildTimeline assembles the replay index over the whole archive.
func BuildTimeline(log *arena.SnapshotLog) Timeline {
	snapshots := log.All()
	return Timeline{
		TotalTicks: len(snapshots),
		KeyMoments: keyMoments(snapshots),
		Snapshots:  snapshots,
	}
}

// Range returns the archived snapshots with start <= tick <= end.
func Range(log *arena.SnapshotLog, start, end int) []arena.TickSnapshot {
	out := []arena.TickSnapshot{}
	for _, s := range log.All() {
		if s.Tick >= start && s.Tick <= end {
			out = append(out, s)
		}
	}
	return out
}

func keyMoments(snapshots []arena.TickSnapshot) []KeyMoment {
	out := []KeyMoment{}
	for _, s := range snapshots {
		for _, ev := range s.Events {
			switch ev.Type {
			case arena.EventGameResolve, arena.EventAgentFallen, arena.EventAllianceFormed, arena.EventHumanJoined:
				out = append(out, KeyMoment{Tick: s.Tick, Type: ev.Type, Message: ev.Message})
			}
		}
	}
	return out
}
