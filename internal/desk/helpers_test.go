package desk_test

import (
	"testing"

	"webdesk/internal/desk"
	"webdesk/internal/testutil"
)

// newService builds a Service over the given items with stubbed clock,
// id generator and a recording notifier.
func newService(t *testing.T, items []*desk.Item) (*desk.Service, *testutil.RecordingNotifier, *testutil.StubClock) {
	t.Helper()
	clock := testutil.FixedClock()
	notifier := testutil.NewRecordingNotifier()
	svc := desk.NewService(items, testutil.AllUsers(), desk.NewNopLogger(), notifier, clock, testutil.NewStubIDGenerator())
	return svc, notifier, clock
}

// seedDesktop is the standard fixture:
//
//	Desktop
//	├── Documents/        (docs)
//	│   └── report.txt    (report)
//	├── photo.jpg         (photo, at 100,50)
//	└── Projects/         (projects)
//	    └── notes.txt     (notes)
func seedDesktop() []*desk.Item {
	return []*desk.Item{
		testutil.NewItem("docs", desk.RootID, "Documents", desk.KindFolder, 0),
		testutil.NewItem("report", "docs", "report.txt", desk.KindText, 0),
		testutil.NewItem("photo", desk.RootID, "photo.jpg", desk.KindImage, 1, testutil.At(100, 50)),
		testutil.NewItem("projects", desk.RootID, "Projects", desk.KindFolder, 2),
		testutil.NewItem("notes", "projects", "notes.txt", desk.KindText, 0),
	}
}

// collectionsEqual compares two snapshots field-by-field, ignoring
// slice ordering.
func collectionsEqual(t *testing.T, got, want desk.Collection) bool {
	t.Helper()
	if len(got) != len(want) {
		t.Logf("collection size: got %d, want %d", len(got), len(want))
		return false
	}
	for _, w := range want {
		g := got.ByID(w.ID)
		if g == nil {
			t.Logf("item %s missing", w.ID)
			return false
		}
		if !g.Equal(w) {
			t.Logf("item %s differs: got %+v, want %+v", w.ID, g, w)
			return false
		}
	}
	return true
}

func findByName(items []*desk.Item, name string) *desk.Item {
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	return nil
}

func names(items []*desk.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}
