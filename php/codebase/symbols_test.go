package codebase

import (
	"testing"

	"github.com/dhamidi/phpfront/php/parser"
)

const symbolSource = `<?php
namespace App\Models;

interface HasName { function name(); }

abstract class User implements HasName {
    public function name() { return 1; }
    private static function make() {}
}

trait Greets {}

function helper() {}
`

func TestSymbols(t *testing.T) {
	tree := parser.Parse([]byte(symbolSource), parser.WithFile("user.php"))
	symbols := Symbols(tree)

	want := []struct {
		kind      SymbolKind
		name      string
		container string
	}{
		{SymbolNamespace, `App\Models`, ""},
		{SymbolInterface, `App\Models\HasName`, ""},
		{SymbolMethod, "name", `App\Models\HasName`},
		{SymbolClass, `App\Models\User`, ""},
		{SymbolMethod, "name", `App\Models\User`},
		{SymbolMethod, "make", `App\Models\User`},
		{SymbolTrait, `App\Models\Greets`, ""},
		{SymbolFunction, `App\Models\helper`, ""},
	}
	if len(symbols) != len(want) {
		t.Fatalf("got %d symbols, want %d: %+v", len(symbols), len(want), symbols)
	}
	for i, w := range want {
		s := symbols[i]
		if s.Kind != w.kind || s.Name != w.name || s.Container != w.container {
			t.Errorf("symbol %d = %v %q in %q, want %v %q in %q", i, s.Kind, s.Name, s.Container, w.kind, w.name, w.container)
		}
		if s.Path != "user.php" {
			t.Errorf("symbol %d Path = %q, want user.php", i, s.Path)
		}
		if s.NameSpan.Start < s.Span.Start || s.NameSpan.End > s.Span.End {
			t.Errorf("symbol %d NameSpan %+v outside Span %+v", i, s.NameSpan, s.Span)
		}
	}

	user := symbols[3]
	if got := symbolSource[user.NameSpan.Start:user.NameSpan.End]; got != "User" {
		t.Errorf("class name text = %q, want User", got)
	}
	if got := symbolSource[user.Span.Start : user.Span.Start+8]; got != "abstract" {
		t.Errorf("class span starts with %q, want abstract", got)
	}
	if user.ShortName() != "User" {
		t.Errorf("ShortName() = %q, want User", user.ShortName())
	}
}

func TestSymbolsBracedNamespaces(t *testing.T) {
	src := "<?php namespace A { class X {} } namespace { function g() {} }"
	symbols := Symbols(parser.Parse([]byte(src)))

	var names []string
	for _, s := range symbols {
		names = append(names, s.Name)
	}
	want := []string{"A", `A\X`, "g"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSymbolsSkipMissingNames(t *testing.T) {
	symbols := Symbols(parser.Parse([]byte("<?php class { } function () {}")))
	for _, s := range symbols {
		if s.Name == "" {
			t.Errorf("symbol with empty name: %+v", s)
		}
	}
}

func TestFindSymbols(t *testing.T) {
	c := newTestCodebase(t, nil)
	c.UpdateFile("/a.php", []byte("<?php class UserRepository {} class Order {}"))
	c.UpdateFile("/b.php", []byte("<?php function userName() {}"))

	if n := len(c.FindSymbols("")); n != 3 {
		t.Errorf("FindSymbols(\"\") returned %d symbols, want 3", n)
	}

	found := c.FindSymbols("user")
	if len(found) != 2 {
		t.Fatalf("FindSymbols(user) = %+v, want 2 symbols", found)
	}
	if found[0].Name != "userName" {
		t.Errorf("best match = %q, want userName", found[0].Name)
	}

	if found := c.FindSymbols("qqq"); len(found) != 0 {
		t.Errorf("FindSymbols(qqq) = %+v, want none", found)
	}
}
