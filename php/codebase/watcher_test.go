package codebase

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestFileWatcherPoll(t *testing.T) {
	c := newTestCodebase(t, map[string]string{
		"a.php": "<?php class A {}",
		"b.php": "<?php class B {}",
	})
	a := filepath.Join(c.RootDir(), "a.php")
	b := filepath.Join(c.RootDir(), "b.php")

	w := NewFileWatcher(c, time.Hour)
	var events []string
	w.OnChange = func(path string, removed bool) {
		if removed {
			events = append(events, "-"+filepath.Base(path))
		} else {
			events = append(events, "+"+filepath.Base(path))
		}
	}

	changed, removed := w.Poll()
	if !slices.Equal(changed, []string{a, b}) || len(removed) != 0 {
		t.Fatalf("first Poll = %v, %v, want both files changed", changed, removed)
	}
	if c.GetFile(a) == nil || c.GetFile(b) == nil {
		t.Fatalf("files not loaded after first Poll")
	}

	changed, removed = w.Poll()
	if len(changed) != 0 || len(removed) != 0 {
		t.Errorf("idle Poll = %v, %v, want nothing", changed, removed)
	}

	if err := os.WriteFile(a, []byte("<?php class A2 {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(a, later, later); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(b); err != nil {
		t.Fatal(err)
	}

	changed, removed = w.Poll()
	if !slices.Equal(changed, []string{a}) || !slices.Equal(removed, []string{b}) {
		t.Errorf("Poll after edits = %v, %v, want [a.php], [b.php]", changed, removed)
	}
	if c.GetFile(b) != nil {
		t.Errorf("b.php still cached after removal")
	}
	if syms := c.GetFile(a).Symbols; len(syms) != 1 || syms[0].Name != "A2" {
		t.Errorf("a.php symbols = %+v, want A2", syms)
	}

	want := []string{"+a.php", "+b.php", "+a.php", "-b.php"}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestFileWatcherStartStop(t *testing.T) {
	c := newTestCodebase(t, map[string]string{"a.php": "<?php"})
	w := NewFileWatcher(c, time.Millisecond)
	done := make(chan struct{})
	var once bool
	w.OnChange = func(path string, removed bool) {
		if !once {
			once = true
			close(done)
		}
	}
	w.Start()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the initial scan")
	}
	w.Stop()
	w.Stop()
}

func TestFileWatcherSkip(t *testing.T) {
	c := newTestCodebase(t, map[string]string{
		"a.php": "<?php class A {}",
		"b.php": "<?php class B {}",
	})
	a := filepath.Join(c.RootDir(), "a.php")
	b := filepath.Join(c.RootDir(), "b.php")

	w := NewFileWatcher(c, time.Hour)
	w.Skip = func(path string) bool { return path == a }

	changed, _ := w.Poll()
	if !slices.Equal(changed, []string{b}) {
		t.Errorf("first Poll changed = %v, want only b.php", changed)
	}
	if c.GetFile(a) != nil {
		t.Errorf("skipped a.php was parsed")
	}

	c.UpdateFile(a, []byte("<?php class Edited {}"))
	if err := os.Remove(a); err != nil {
		t.Fatal(err)
	}
	if _, removed := w.Poll(); len(removed) != 0 {
		t.Errorf("Poll removed %v, want skipped a.php kept", removed)
	}
	if f := c.GetFile(a); f == nil || string(f.Content) != "<?php class Edited {}" {
		t.Errorf("a.php cache = %v, want the edited content", f)
	}
}
