package desk_test

import (
	"errors"
	"testing"
	"time"

	"webdesk/internal/desk"
	"webdesk/internal/testutil"
)

func TestMoveToTrash(t *testing.T) {
	t.Parallel()

	t.Run("stamps metadata and clears position", func(t *testing.T) {
		t.Parallel()
		svc, _, clock := newService(t, seedDesktop())

		if err := svc.MoveToTrash(testutil.Admin(), []string{"photo"}); err != nil {
			t.Fatalf("MoveToTrash() error = %v", err)
		}
		it := svc.Snapshot().ByID("photo")
		if it.ParentID != desk.TrashID {
			t.Errorf("parent = %s, want trash", it.ParentID)
		}
		if it.Trash == nil {
			t.Fatal("trash metadata missing")
		}
		if it.Trash.OriginalParentID != desk.RootID {
			t.Errorf("original parent = %s, want root", it.Trash.OriginalParentID)
		}
		if !it.Trash.TrashedAt.Equal(clock.Now()) {
			t.Errorf("trashedAt = %v, want %v", it.Trash.TrashedAt, clock.Now())
		}
		if it.Position != nil {
			t.Error("explicit position survived trashing")
		}
	})

	t.Run("children of a trashed folder vanish from normal views", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, seedDesktop())

		if err := svc.MoveToTrash(testutil.Admin(), []string{"docs"}); err != nil {
			t.Fatalf("MoveToTrash() error = %v", err)
		}

		// The folder is in the bin; its child keeps its parent link but
		// is not browsable.
		if _, err := svc.VisibleChildren(testutil.Admin(), "docs"); !errors.Is(err, desk.ErrItemInTrash) {
			t.Fatalf("VisibleChildren(trashed folder) error = %v, want ErrItemInTrash", err)
		}
		bin, err := svc.VisibleChildren(testutil.Admin(), desk.TrashID)
		if err != nil {
			t.Fatalf("VisibleChildren(trash) error = %v", err)
		}
		if len(bin) != 1 || bin[0].ID != "docs" {
			t.Errorf("trash listing = %v, want [Documents] only", names(bin))
		}
	})

	t.Run("already trashed items are skipped", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, seedDesktop())

		if err := svc.MoveToTrash(testutil.Admin(), []string{"photo"}); err != nil {
			t.Fatalf("MoveToTrash() error = %v", err)
		}
		if err := svc.MoveToTrash(testutil.Admin(), []string{"photo"}); err != nil {
			t.Fatalf("second MoveToTrash() error = %v", err)
		}
		if got := len(svc.HistorySummaries()); got != 1 {
			t.Errorf("history has %d records, want 1", got)
		}
	})
}

func TestRestore(t *testing.T) {
	t.Parallel()

	t.Run("round-trips to the original parent", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, seedDesktop())

		if err := svc.MoveToTrash(testutil.Admin(), []string{"report"}); err != nil {
			t.Fatalf("MoveToTrash() error = %v", err)
		}
		if err := svc.Restore(testutil.Admin(), []string{"report"}); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		it := svc.Snapshot().ByID("report")
		if it == nil {
			t.Fatal("item id not preserved through trash round-trip")
		}
		if it.ParentID != "docs" {
			t.Errorf("parent = %s, want docs", it.ParentID)
		}
		if it.Trash != nil {
			t.Error("trash metadata survived restore")
		}
	})

	t.Run("falls back to root when the original parent is gone", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, seedDesktop())

		if err := svc.MoveToTrash(testutil.Admin(), []string{"report"}); err != nil {
			t.Fatalf("MoveToTrash() error = %v", err)
		}
		if err := svc.PermanentDelete(testutil.Admin(), []string{"docs"}); err != nil {
			t.Fatalf("PermanentDelete() error = %v", err)
		}
		if err := svc.Restore(testutil.Admin(), []string{"report"}); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		it := svc.Snapshot().ByID("report")
		if it.ParentID != desk.RootID {
			t.Errorf("parent = %s, want root fallback", it.ParentID)
		}
	})

	t.Run("non-residents of the bin are skipped", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, seedDesktop())

		if err := svc.Restore(testutil.Admin(), []string{"photo"}); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if svc.CanUndo() {
			t.Error("restoring nothing committed a history record")
		}
	})
}

func TestPermanentDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes the whole subtree", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, seedDesktop())

		if err := svc.PermanentDelete(testutil.Admin(), []string{"projects"}); err != nil {
			t.Fatalf("PermanentDelete() error = %v", err)
		}
		c := svc.Snapshot()
		if c.ByID("projects") != nil || c.ByID("notes") != nil {
			t.Error("subtree still present after permanent delete")
		}
	})

	t.Run("undo resurrects items with identical fields", func(t *testing.T) {
		t.Parallel()
		svc, _, clock := newService(t, seedDesktop())
		before := svc.Snapshot()
		clock.Advance(time.Minute)

		if err := svc.PermanentDelete(testutil.Admin(), []string{"photo", "report"}); err != nil {
			t.Fatalf("PermanentDelete() error = %v", err)
		}
		if !svc.Undo() {
			t.Fatal("Undo() = false")
		}
		after := svc.Snapshot()
		if !collectionsEqual(t, after, before) {
			t.Error("resurrected items differ from their pre-delete state")
		}
		if got := after.ByID("photo").Order; got != 1 {
			t.Errorf("photo order = %d, want original 1", got)
		}
	})
}

func TestEmptyTrash(t *testing.T) {
	t.Parallel()

	t.Run("deletes every bin resident in one action", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, seedDesktop())

		if err := svc.MoveToTrash(testutil.Admin(), []string{"photo", "docs"}); err != nil {
			t.Fatalf("MoveToTrash() error = %v", err)
		}
		if err := svc.EmptyTrash(testutil.Admin()); err != nil {
			t.Fatalf("EmptyTrash() error = %v", err)
		}
		c := svc.Snapshot()
		// docs and its child report both go; photo too.
		for _, id := range []string{"photo", "docs", "report"} {
			if c.ByID(id) != nil {
				t.Errorf("item %s survived empty trash", id)
			}
		}
		if got := len(svc.HistorySummaries()); got != 2 {
			t.Errorf("history has %d records, want trash+empty = 2", got)
		}
	})

	t.Run("empty bin is a no-op", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, seedDesktop())
		if err := svc.EmptyTrash(testutil.Admin()); err != nil {
			t.Fatalf("EmptyTrash() error = %v", err)
		}
		if svc.CanUndo() {
			t.Error("emptying an empty bin committed a history record")
		}
	})
}
