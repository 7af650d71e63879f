package cli

import (
	"sort"

	"github.com/iprlic/vern-raspored/internal/schedule"
)

// sortByStart returns a copy of classes ordered by start time. Classes that
// start together keep their scrape order.
func sortByStart(classes []schedule.Class) []schedule.Class {
	sorted := append([]schedule.Class(nil), classes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateTime.Before(sorted[j].DateTime)
	})
	return sorted
}
