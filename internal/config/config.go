package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"webdesk/internal/desk"
)

// Config is the main configuration for webdesk. Besides server tuning
// it carries the seeded user roster and desktop contents: there is no
// durable store, so the config file is where a desktop "comes from" on
// every start.
type Config struct {
	Listen   string         `toml:"listen"`
	LogDir   string         `toml:"log_dir"`
	Transfer TransferConfig `toml:"transfer"`
	Users    []UserConfig   `toml:"users"`
	Items    []ItemConfig   `toml:"items"`
}

// TransferConfig tunes the simulated upload/download scheduler.
type TransferConfig struct {
	TickMillis int `toml:"tick_millis"` // scheduler interval; defaults to 200
	Step       int `toml:"step"`        // percent advanced per tick; defaults to 10
}

// UserConfig describes one login account.
type UserConfig struct {
	ID           string `toml:"id"`
	Name         string `toml:"name"`
	FullName     string `toml:"full_name,omitempty"`
	Role         string `toml:"role"` // "admin", "standard" or "restricted"
	PasswordHash string `toml:"password_hash,omitempty"`
}

// ItemConfig describes one seeded item. Position is given as a pair of
// pointers so "no explicit position" survives the round-trip.
type ItemConfig struct {
	ID        string   `toml:"id"`
	ParentID  string   `toml:"parent_id"`
	Name      string   `toml:"name"`
	Kind      string   `toml:"kind"`
	Size      int64    `toml:"size,omitempty"`
	Content   string   `toml:"content,omitempty"`
	Order     int      `toml:"order"`
	X         *float64 `toml:"x,omitempty"`
	Y         *float64 `toml:"y,omitempty"`
	Tags      []string `toml:"tags,omitempty"`
	VisibleTo []string `toml:"visible_to,omitempty"`
}

// NewConfig creates a Config with defaults and a starter roster.
func NewConfig(baseDir string) *Config {
	return &Config{
		Listen: "127.0.0.1:8475",
		LogDir: filepath.Join(baseDir, "log"),
		Transfer: TransferConfig{
			TickMillis: 200,
			Step:       10,
		},
		Users: []UserConfig{
			{ID: "u-admin", Name: "admin", Role: string(desk.RoleAdmin)},
			{ID: "u-guest", Name: "guest", Role: string(desk.RoleRestricted)},
		},
	}
}

// DeskUsers converts the configured roster into core users.
func (c *Config) DeskUsers() []*desk.User {
	out := make([]*desk.User, 0, len(c.Users))
	for _, u := range c.Users {
		role := desk.Role(u.Role)
		switch role {
		case desk.RoleAdmin, desk.RoleStandard, desk.RoleRestricted:
		default:
			role = desk.RoleRestricted
		}
		out = append(out, &desk.User{ID: u.ID, Name: u.Name, FullName: u.FullName, Role: role})
	}
	return out
}

// DeskItems converts the seeded items into core items. Unknown kinds
// degrade to "unknown"; missing visibility defaults to everyone.
func (c *Config) DeskItems() []*desk.Item {
	out := make([]*desk.Item, 0, len(c.Items))
	for _, ic := range c.Items {
		it := &desk.Item{
			ID:       ic.ID,
			ParentID: ic.ParentID,
			Name:     ic.Name,
			Kind:     desk.Kind(ic.Kind),
			Size:     ic.Size,
			Content:  ic.Content,
			Order:    ic.Order,
			Tags:     append([]string(nil), ic.Tags...),
		}
		if it.ParentID == "" {
			it.ParentID = desk.RootID
		}
		if it.Kind == "" {
			it.Kind = desk.KindUnknown
		}
		if ic.X != nil && ic.Y != nil {
			it.Position = &desk.Point{X: *ic.X, Y: *ic.Y}
		}
		if len(ic.VisibleTo) == 0 {
			it.VisibleTo = desk.AllRoles()
		} else {
			for _, r := range ic.VisibleTo {
				it.VisibleTo = append(it.VisibleTo, desk.Role(r))
			}
		}
		out = append(out, it)
	}
	return out
}

// PasswordFor returns the stored password hash for a login name.
func (c *Config) PasswordFor(name string) (string, bool) {
	for _, u := range c.Users {
		if u.Name == name {
			return u.PasswordHash, true
		}
	}
	return "", false
}

// SetPassword stores a password hash for a login name.
func (c *Config) SetPassword(name, hash string) error {
	for i := range c.Users {
		if c.Users[i].Name == name {
			c.Users[i].PasswordHash = hash
			return nil
		}
	}
	return fmt.Errorf("no such user: %s", name)
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// WriteToFile writes a Config to the specified file path, creating the
// directory if needed.
func WriteToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := WriteToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
