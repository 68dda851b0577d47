package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestDiskGetSet(t *testing.T) {
	base := t.TempDir()
	d, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, ok, err := d.Get("tasks"); ok || err != nil {
		t.Fatalf("missing key = %v, %v", ok, err)
	}
	if err := d.Set("tasks", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := d.Get("tasks")
	if err != nil || !ok || v != `[]` {
		t.Fatalf("get = %q, %v, %v", v, ok, err)
	}

	b, err := os.ReadFile(filepath.Join(base, "tasks"))
	if err != nil {
		t.Fatalf("key is not a flat file: %v", err)
	}
	if string(b) != `[]` {
		t.Fatalf("file = %q", b)
	}
}

func TestDiskSeesOtherWriters(t *testing.T) {
	base := t.TempDir()
	d, _ := Load(testConfig{path: base})
	_ = d.Set("theme", "dark")
	if v, _, _ := d.Get("theme"); v != "dark" {
		t.Fatalf("theme = %q", v)
	}

	other, _ := Load(testConfig{path: base})
	_ = other.Set("theme", "light")

	if v, _, _ := d.Get("theme"); v != "light" {
		t.Fatalf("stale read: %q", v)
	}
}

func TestDiskErase(t *testing.T) {
	d, _ := Load(testConfig{path: t.TempDir()})
	if err := d.Erase("tasks"); err != nil {
		t.Fatalf("erase missing: %v", err)
	}
	_ = d.Set("tasks", "x")
	if err := d.Erase("tasks"); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if _, ok, _ := d.Get("tasks"); ok {
		t.Fatal("key survived erase")
	}
}

func TestInvalidKeys(t *testing.T) {
	d, _ := Load(testConfig{path: t.TempDir()})
	for _, key := range []string{"", "../up", "a/b", ".tmp"} {
		if err := d.Set(key, "x"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Set(%q) = %v, want ErrInvalidKey", key, err)
		}
		if err := NewMemory().Set(key, "x"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("memory Set(%q) = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestLoadRequiresBasePath(t *testing.T) {
	if _, err := Load(testConfig{}); err == nil {
		t.Fatal("expected error for empty base path")
	}
}

func TestTasksOverDisk(t *testing.T) {
	base := t.TempDir()
	d, _ := Load(testConfig{path: base})
	s := Open(d, nil)
	for _, tk := range sampleTasks() {
		if err := s.Create(tk); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	d2, _ := Load(testConfig{path: base})
	if got := len(Open(d2, nil).All()); got != 3 {
		t.Fatalf("reopened %d tasks, want 3", got)
	}
}
