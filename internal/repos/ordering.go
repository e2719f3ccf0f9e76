package repos

import (
    "sort"
    "time"

    "github.com/asthmaai/asthmaai-backend/internal/types"
)

var timestampLayouts = []string{
    time.RFC3339Nano,
    "2006-01-02T15:04:05",
    "2006-01-02 15:04:05",
    "2006-01-02",
}

// parseTimestamp returns the zero time for values it cannot read, so they sort first.
func parseTimestamp(ts string) time.Time {
    for _, layout := range timestampLayouts {
        if t, err := time.Parse(layout, ts); err == nil {
            return t
        }
    }
    return time.Time{}
}

// sortMessagesAscending orders by time; equal timestamps keep creation order.
func sortMessagesAscending(msgs []*types.Message) {
    keys := make(map[*types.Message]time.Time, len(msgs))
    for _, m := range msgs {
        keys[m] = parseTimestamp(m.Timestamp)
    }
    sort.SliceStable(msgs, func(i, j int) bool {
        return keys[msgs[i]].Before(keys[msgs[j]])
    })
}

// sortSymptomsDescending puts the newest entry first. Timestamps only carry
// milliseconds, so equal timestamps fall back to the higher id first.
func sortSymptomsDescending(symptoms []*types.Symptom) {
    keys := make(map[*types.Symptom]time.Time, len(symptoms))
    for _, s := range symptoms {
        keys[s] = parseTimestamp(s.Timestamp)
    }
    sort.SliceStable(symptoms, func(i, j int) bool {
        ki, kj := keys[symptoms[i]], keys[symptoms[j]]
        if ki.Equal(kj) {
            return symptoms[i].ID > symptoms[j].ID
        }
        return ki.After(kj)
    })
}
