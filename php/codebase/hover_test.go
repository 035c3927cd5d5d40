package codebase

import (
	"strings"
	"testing"
)

func TestDescribeToken(t *testing.T) {
	f := ParseFile("a.php", []byte("<?php $a = foo(1);"))
	got := Describe(f, 12)

	for _, want := range []string{
		"**Name** `foo`",
		"modes: Scripting",
		"NamespaceName < QualifiedName < FunctionCallExpression < SimpleAssignmentExpression < ExpressionStatement < StatementList",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Describe = %q, want it to contain %q", got, want)
		}
	}
}

func TestDescribeError(t *testing.T) {
	src := "<?php class A exten B {}"
	f := ParseFile("a.php", []byte(src))
	got := Describe(f, strings.Index(src, "exten")+1)

	if !strings.HasPrefix(got, "**syntax error**: unexpected Name") {
		t.Errorf("Describe = %q, want a syntax error", got)
	}
	if !strings.Contains(got, "did you mean `extends`?") {
		t.Errorf("Describe = %q, want a suggestion", got)
	}
	if !strings.Contains(got, "ClassDeclarationHeader < ClassDeclaration") {
		t.Errorf("Describe = %q, want the enclosing header", got)
	}
}

func TestDescribeOutside(t *testing.T) {
	f := ParseFile("a.php", []byte("<?php"))
	if got := Describe(f, 100); got != "" {
		t.Errorf("Describe past end = %q, want empty", got)
	}
	if got := Describe(nil, 0); got != "" {
		t.Errorf("Describe(nil) = %q, want empty", got)
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"`x`", "'x'"},
		{"echo 1;\necho 2;", "echo 1;..."},
		{"a" + strings.Repeat("é", 25), "a" + strings.Repeat("é", 19) + "..."},
	}
	for _, tt := range tests {
		if got := snippet(tt.in); got != tt.want {
			t.Errorf("snippet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
