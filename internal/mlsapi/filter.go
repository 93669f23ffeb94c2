package mlsapi

import (
	"fmt"
	"strings"
	"time"
)

// syncedStatuses are the listing statuses the engine keeps in sync.
// Archived statuses (closed, expired, ...) only enter the store when a
// tracked listing transitions into them.
var syncedStatuses = []string{
	"Active",
	"Active Under Contract",
	"Pending",
}

// statusPredicate builds the OR-composed status clause shared by both
// filter kinds
func statusPredicate() string {
	parts := make([]string, 0, len(syncedStatuses))
	for _, status := range syncedStatuses {
		parts = append(parts, fmt.Sprintf("StandardStatus eq '%s'", status))
	}
	return "(" + strings.Join(parts, " or ") + ")"
}

// BuildIncrementalFilter returns the filter for an incremental sync:
// the status predicate, ANDed with a modified-after clause when a
// cursor is supplied
func BuildIncrementalFilter(lastModified *time.Time) string {
	filter := statusPredicate()
	if lastModified != nil {
		filter += fmt.Sprintf(" and ModificationTimestamp gt %s",
			lastModified.UTC().Format(time.RFC3339))
	}
	return filter
}

// BuildResyncFilter returns the filter for a full resync: the status
// predicate with no time bound
func BuildResyncFilter() string {
	return statusPredicate()
}

// BuildKeyFilter returns an OR-composed predicate matching a key field
// against a set of ids, used for related-resource chunk requests
func BuildKeyFilter(keyField string, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s eq '%s'", keyField, key))
	}
	return strings.Join(parts, " or ")
}
