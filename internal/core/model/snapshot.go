package model

import "sort"

// Snapshot is the full machine-readable state of all projects.
type Snapshot map[ProjectKey]*ProjectRecord

// Clone deep-copies every record.
func (s Snapshot) Clone() Snapshot {
	clone := make(Snapshot, len(s))
	for key, record := range s {
		clone[key] = record.Clone()
	}
	return clone
}

// Keys returns the project keys in ascending order.
func (s Snapshot) Keys() []ProjectKey {
	keys := make([]ProjectKey, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Normalize drops nil entries, allocates missing day maps and clears open
// intervals. It returns the keys whose running marker was cleared.
func (s Snapshot) Normalize() []ProjectKey {
	var cleared []ProjectKey
	for _, key := range s.Keys() {
		record := s[key]
		if record == nil {
			delete(s, key)
			continue
		}
		if record.DailyTimesMs == nil {
			record.DailyTimesMs = make(map[string]uint64)
		}
		if record.LastStartTimeMs != nil {
			record.LastStartTimeMs = nil
			cleared = append(cleared, key)
		}
	}
	return cleared
}
