package engine

import (
	"sort"

	"gameserver-stats/internal/domain"
)

// SessionGroup is an ordered, non-empty run of snapshot records believed to
// belong to one contiguous match.
type SessionGroup []domain.SnapshotRecord

// GroupSnapshots partitions one polling cycle's records into chronological
// session groups. Records are stable-sorted by timestamp first. A new group
// opens when a record's round counter resets to exactly 1, or failing that,
// when its map differs from the map of the open group's first record. The
// trailing open group is always emitted.
func GroupSnapshots(records []domain.SnapshotRecord) []SessionGroup {
	if len(records) == 0 {
		return nil
	}

	sorted := make([]domain.SnapshotRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var groups []SessionGroup
	var open SessionGroup
	for _, record := range sorted {
		switch {
		case len(open) == 0:
			open = SessionGroup{record}
		case record.Round == 1:
			groups = append(groups, open)
			open = SessionGroup{record}
		case record.Map != open[0].Map:
			groups = append(groups, open)
			open = SessionGroup{record}
		default:
			open = append(open, record)
		}
	}
	return append(groups, open)
}
