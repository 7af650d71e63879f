package cli

import (
	"testing"
	"time"

	"github.com/iprlic/vern-raspored/internal/schedule"
)

func TestSortByStart(t *testing.T) {
	at := func(day, hour int, name string) schedule.Class {
		return schedule.Class{Name: name, DateTime: time.Date(2024, 6, day, hour, 0, 0, 0, time.UTC)}
	}

	classes := []schedule.Class{
		at(4, 10, "C"),
		at(3, 12, "B"),
		at(3, 8, "A"),
		at(4, 10, "D"),
	}

	got := sortByStart(classes)

	want := []string{"A", "B", "C", "D"}
	for i, class := range got {
		if class.Name != want[i] {
			t.Errorf("position %d = %s, want %s", i, class.Name, want[i])
		}
	}
	if classes[0].Name != "C" {
		t.Error("sortByStart() modified its input")
	}
}
