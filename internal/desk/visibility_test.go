package desk_test

import (
	"testing"

	"webdesk/internal/desk"
	"webdesk/internal/testutil"
)

func TestIsVisible(t *testing.T) {
	t.Parallel()

	t.Run("admin sees everything regardless of visibility set", func(t *testing.T) {
		t.Parallel()
		items := []*desk.Item{
			testutil.NewItem("a", desk.RootID, "a", desk.KindText, 0, testutil.VisibleTo()),
			testutil.NewItem("b", desk.RootID, "b", desk.KindText, 1, testutil.VisibleTo(desk.RoleRestricted)),
			testutil.NewItem("c", desk.RootID, "c", desk.KindText, 2),
		}
		for _, it := range items {
			if !desk.IsVisible(testutil.Admin(), it) {
				t.Errorf("IsVisible(admin, %s) = false, want true", it.ID)
			}
		}
	})

	t.Run("non-admin requires role membership", func(t *testing.T) {
		t.Parallel()
		it := testutil.NewItem("a", desk.RootID, "a", desk.KindText, 0, testutil.VisibleTo(desk.RoleStandard))
		if !desk.IsVisible(testutil.Standard(), it) {
			t.Error("IsVisible(standard) = false, want true")
		}
		if desk.IsVisible(testutil.Restricted(), it) {
			t.Error("IsVisible(restricted) = true, want false")
		}
	})

	t.Run("nil user or item is never visible", func(t *testing.T) {
		t.Parallel()
		it := testutil.NewItem("a", desk.RootID, "a", desk.KindText, 0)
		if desk.IsVisible(nil, it) {
			t.Error("IsVisible(nil, item) = true, want false")
		}
		if desk.IsVisible(testutil.Admin(), nil) {
			t.Error("IsVisible(admin, nil) = true, want false")
		}
	})
}

func TestHasFullAccess_MatchesVisibility(t *testing.T) {
	t.Parallel()

	items := []*desk.Item{
		testutil.NewItem("a", desk.RootID, "a", desk.KindText, 0, testutil.VisibleTo()),
		testutil.NewItem("b", desk.RootID, "b", desk.KindText, 1, testutil.VisibleTo(desk.RoleStandard)),
		testutil.NewItem("c", desk.RootID, "c", desk.KindFolder, 2),
	}
	for _, u := range testutil.AllUsers() {
		for _, it := range items {
			if got, want := desk.HasFullAccess(u, it), desk.IsVisible(u, it); got != want {
				t.Errorf("HasFullAccess(%s, %s) = %v, IsVisible = %v; want equal", u.Role, it.ID, got, want)
			}
		}
	}
}

func TestVisibleChildren_FiltersByRole(t *testing.T) {
	t.Parallel()

	items := []*desk.Item{
		testutil.NewItem("folder", desk.RootID, "Shared", desk.KindFolder, 0),
		testutil.NewItem("secret", "folder", "secret.txt", desk.KindText, 0,
			testutil.VisibleTo(desk.RoleStandard)),
		testutil.NewItem("public", "folder", "public.txt", desk.KindText, 1),
	}
	svc, _, _ := newService(t, items)

	got, err := svc.VisibleChildren(testutil.Restricted(), "folder")
	if err != nil {
		t.Fatalf("VisibleChildren() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "public" {
		t.Fatalf("restricted listing = %v, want exactly [public.txt]", names(got))
	}

	got, err = svc.VisibleChildren(testutil.Standard(), "folder")
	if err != nil {
		t.Fatalf("VisibleChildren() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("standard listing = %v, want both items", names(got))
	}
}
