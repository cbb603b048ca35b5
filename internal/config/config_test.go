package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webdesk/internal/config"
	"webdesk/internal/desk"
)

func TestManager_ReadWrite(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig("/tmp/webdesk")
	cfg.Items = []config.ItemConfig{
		{ID: "welcome", Name: "welcome.txt", Kind: "text", Content: "hello", Order: 0},
	}

	var buf bytes.Buffer
	m := &config.Manager{}
	if err := m.Write(&buf, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Listen != cfg.Listen {
		t.Errorf("listen = %q, want %q", got.Listen, cfg.Listen)
	}
	if len(got.Users) != 2 || got.Users[0].Name != "admin" {
		t.Errorf("users = %+v, want the starter roster", got.Users)
	}
	if len(got.Items) != 1 || got.Items[0].Content != "hello" {
		t.Errorf("items = %+v, want the seeded file", got.Items)
	}
}

func TestManager_ReadInvalid(t *testing.T) {
	t.Parallel()

	m := &config.Manager{}
	if _, err := m.Read(strings.NewReader("listen = [broken")); err == nil {
		t.Fatal("Read() error = nil, want decode failure")
	}
}

func TestDeskConversions(t *testing.T) {
	t.Parallel()

	t.Run("items default parent, kind and visibility", func(t *testing.T) {
		t.Parallel()
		x, y := 10.0, 20.0
		cfg := &config.Config{Items: []config.ItemConfig{
			{ID: "a", Name: "a.bin"},
			{ID: "b", ParentID: "a", Name: "b.txt", Kind: "text", X: &x, Y: &y,
				VisibleTo: []string{"standard"}},
		}}

		items := cfg.DeskItems()
		if items[0].ParentID != desk.RootID {
			t.Errorf("parent = %s, want root default", items[0].ParentID)
		}
		if items[0].Kind != desk.KindUnknown {
			t.Errorf("kind = %s, want unknown default", items[0].Kind)
		}
		if len(items[0].VisibleTo) != 3 {
			t.Errorf("visibleTo = %v, want all roles", items[0].VisibleTo)
		}
		if items[1].Position == nil || items[1].Position.X != 10 {
			t.Errorf("position = %v, want (10,20)", items[1].Position)
		}
		if len(items[1].VisibleTo) != 1 || items[1].VisibleTo[0] != desk.RoleStandard {
			t.Errorf("visibleTo = %v, want [standard]", items[1].VisibleTo)
		}
	})

	t.Run("unknown roles degrade to restricted", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Users: []config.UserConfig{{ID: "u", Name: "u", Role: "root"}}}
		users := cfg.DeskUsers()
		if users[0].Role != desk.RoleRestricted {
			t.Errorf("role = %s, want restricted", users[0].Role)
		}
	})
}

func TestInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "webdesk.toml")
	cfg := config.NewConfig(dir)

	if err := config.Init(path, cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Second init must refuse to clobber.
	if err := config.Init(path, cfg); err == nil {
		t.Fatal("Init() on existing file error = nil, want failure")
	}

	got, err := config.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	if got.Transfer.Step != 10 {
		t.Errorf("transfer step = %d, want 10", got.Transfer.Step)
	}
}

func TestSetPassword(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig("/tmp/x")
	if err := cfg.SetPassword("admin", "abc123"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	hash, ok := cfg.PasswordFor("admin")
	if !ok || hash != "abc123" {
		t.Errorf("PasswordFor(admin) = %q,%v, want abc123,true", hash, ok)
	}
	if err := cfg.SetPassword("nobody", "x"); err == nil {
		t.Fatal("SetPassword(nobody) error = nil, want failure")
	}
}
