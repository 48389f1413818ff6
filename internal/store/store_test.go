package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
	if s.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", s.Path(), dbPath)
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	for _, table := range []string{"bindings", "settings"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s should exist: %v", table, err)
		}
	}
}

func TestNewStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.Settings().Set("k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	if v, err := s.Settings().Get("k"); err != nil || v != "v" {
		t.Errorf("Get() after reopen = %q, %v", v, err)
	}
}

func TestBindingRepository_CRUD(t *testing.T) {
	repo := newTestStore(t).Bindings()

	b := &Binding{
		ID:         "b1",
		Trigger:    TriggerSwipeLeft,
		PluginName: "keyboard",
		ActionName: "tap",
		Config:     json.RawMessage(`{"key":"left"}`),
		Enabled:    true,
	}
	if err := repo.Create(b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID("b1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Trigger != TriggerSwipeLeft || got.PluginName != "keyboard" || !got.Enabled {
		t.Errorf("GetByID() = %+v", got)
	}
	if string(got.Config) != `{"key":"left"}` {
		t.Errorf("Config = %s", got.Config)
	}

	got.Enabled = false
	got.ActionName = "press"
	if err := repo.Update(got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ = repo.GetByID("b1")
	if got.Enabled || got.ActionName != "press" {
		t.Errorf("after Update() = %+v", got)
	}

	if err := repo.Delete("b1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID("b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete("b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if err := repo.Update(&Binding{ID: "missing", Trigger: TriggerClick}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() missing error = %v, want ErrNotFound", err)
	}
}

func TestBindingRepository_DefaultConfig(t *testing.T) {
	repo := newTestStore(t).Bindings()

	if err := repo.Create(&Binding{ID: "b", Trigger: TriggerClick, PluginName: "p", ActionName: "a"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := repo.GetByID("b")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if string(got.Config) != "{}" {
		t.Errorf("Config = %s, want {}", got.Config)
	}
}

func TestBindingRepository_RejectsUnknownTrigger(t *testing.T) {
	repo := newTestStore(t).Bindings()

	err := repo.Create(&Binding{ID: "b", Trigger: "wave", PluginName: "p", ActionName: "a"})
	if err == nil {
		t.Error("Create() with unknown trigger should fail")
	}
}

func TestBindingRepository_ListByTrigger(t *testing.T) {
	repo := newTestStore(t).Bindings()

	bindings := []*Binding{
		{ID: "1", Trigger: TriggerSwipeUp, PluginName: "keyboard", ActionName: "tap", Enabled: true},
		{ID: "2", Trigger: TriggerSwipeUp, PluginName: "keyboard", ActionName: "tap", Enabled: false},
		{ID: "3", Trigger: TriggerSwipeDown, PluginName: "keyboard", ActionName: "tap", Enabled: true},
		{ID: "4", Trigger: TriggerSwipeUp, PluginName: "other", ActionName: "run", Enabled: true},
	}
	for _, b := range bindings {
		if err := repo.Create(b); err != nil {
			t.Fatalf("Create(%s) error = %v", b.ID, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	up, err := repo.ListByTrigger(SwipeTrigger("up"))
	if err != nil {
		t.Fatalf("ListByTrigger() error = %v", err)
	}
	if len(up) != 2 || up[0].ID != "1" || up[1].ID != "4" {
		t.Errorf("ListByTrigger(up) = %v", ids(up))
	}

	all, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 4 || all[0].ID != "4" {
		t.Errorf("List() = %v, want newest first", ids(all))
	}

	none, err := repo.ListByTrigger(TriggerClick)
	if err != nil || len(none) != 0 {
		t.Errorf("ListByTrigger(click) = %v, %v", ids(none), err)
	}
}

func ids(bindings []*Binding) []string {
	out := make([]string, len(bindings))
	for i, b := range bindings {
		out[i] = b.ID
	}
	return out
}

func TestTrigger_Valid(t *testing.T) {
	for _, tr := range []Trigger{TriggerClick, TriggerSwipeUp, TriggerSwipeDown, TriggerSwipeLeft, TriggerSwipeRight} {
		if !tr.Valid() {
			t.Errorf("%q should be valid", tr)
		}
	}
	for _, tr := range []Trigger{"", "swipe-none", "wave"} {
		if tr.Valid() {
			t.Errorf("%q should not be valid", tr)
		}
	}
	if SwipeTrigger("right") != TriggerSwipeRight {
		t.Errorf("SwipeTrigger(right) = %q", SwipeTrigger("right"))
	}
}

func TestSettingsRepository(t *testing.T) {
	repo := newTestStore(t).Settings()

	if _, err := repo.Get(SettingTilt); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() missing error = %v, want ErrNotFound", err)
	}
	if got := repo.GetInt(SettingTilt, 7); got != 7 {
		t.Errorf("GetInt() default = %d, want 7", got)
	}

	if err := repo.SetInt(SettingTilt, -12); err != nil {
		t.Fatalf("SetInt() error = %v", err)
	}
	if err := repo.SetInt(SettingTilt, 14); err != nil {
		t.Fatalf("SetInt() overwrite error = %v", err)
	}
	if got := repo.GetInt(SettingTilt, 0); got != 14 {
		t.Errorf("GetInt() = %d, want 14", got)
	}

	repo.Set(SettingLED, "green")
	if got := repo.GetInt(SettingLED, 1); got != 1 {
		t.Errorf("GetInt() non-number = %d, want default 1", got)
	}

	all, err := repo.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 || all[SettingTilt] != "14" {
		t.Errorf("All() = %v", all)
	}
}
