package town

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestAnnouncer_Defaults(t *testing.T) {
	a, err := NewAnnouncer("Rivertown", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arrival, err := a.Arrival("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "arrival", arrival, "alice has arrived in Rivertown")

	departure, err := a.Departure("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "departure", departure, "alice has left")
}

func TestAnnouncer_UnnamedTownFallsBack(t *testing.T) {
	a, err := NewAnnouncer("", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arrival, err := a.Arrival("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "arrival", arrival, "alice has arrived in town")
}

func TestAnnouncer_CustomTemplates(t *testing.T) {
	a, err := NewAnnouncer("Rivertown",
		`Welcome, {{ .UserName | title }}!`,
		`{{ .UserName }} waves goodbye to {{ .TownName }}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arrival, err := a.Arrival("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "arrival", arrival, "Welcome, Alice!")

	departure, err := a.Departure("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "departure", departure, "alice waves goodbye to Rivertown")
}

func TestAnnouncer_BadTemplate(t *testing.T) {
	if _, err := NewAnnouncer("Rivertown", "{{ .UserName", ""); err == nil {
		t.Error("expected a parse error")
	}
}
