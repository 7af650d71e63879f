package schedule

import (
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	id1 := GenerateID("03.06.2024.", "10:00", "A101", "Algorithms")
	id2 := GenerateID("03.06.2024.", "10:00", "A101", "Algorithms")
	if id1 != id2 {
		t.Errorf("GenerateID() not deterministic: %s != %s", id1, id2)
	}

	others := []string{
		GenerateID("04.06.2024.", "10:00", "A101", "Algorithms"),
		GenerateID("03.06.2024.", "11:00", "A101", "Algorithms"),
		GenerateID("03.06.2024.", "10:00", "B202", "Algorithms"),
		GenerateID("03.06.2024.", "10:00", "A101", "Databases"),
	}
	for _, other := range others {
		if other == id1 {
			t.Errorf("GenerateID() collision for different input: %s", other)
		}
	}

	if len(id1) != 36 {
		t.Errorf("GenerateID() = %q, want a UUID string", id1)
	}
}

func TestNewClass(t *testing.T) {
	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	c := NewClass(1, "03.06.2024.", "10:00", start, "A101", "J. Smith", "Algorithms", "Lecture", "2 ects", 2)

	if c.ID != GenerateID("03.06.2024.", "10:00", "A101", "Algorithms") {
		t.Errorf("ID = %q, not derived from stable fields", c.ID)
	}
	if c.Duration() != 90*time.Minute {
		t.Errorf("Duration() = %v, want 90m", c.Duration())
	}
	if !c.End().Equal(start.Add(90 * time.Minute)) {
		t.Errorf("End() = %v", c.End())
	}
	if c.Description() != "J. Smith, Lecture" {
		t.Errorf("Description() = %q", c.Description())
	}
}

func TestClass_ZeroDuration(t *testing.T) {
	c := Class{DateTime: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)}
	if !c.End().Equal(c.DateTime) {
		t.Errorf("End() with zero units = %v, want start", c.End())
	}
}
