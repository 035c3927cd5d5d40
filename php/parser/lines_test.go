package parser

import "testing"

func TestLineTablePosition(t *testing.T) {
	table := newLineTable([]byte("a\nb\r\nc\rd"))

	tests := []struct {
		offset int
		want   string
	}{
		{0, "1:1"},
		{1, "1:2"},
		{2, "2:1"},
		{3, "2:2"},
		{4, "2:3"},
		{5, "3:1"},
		{7, "4:1"},
		{8, "4:2"},
		{100, "4:2"},
		{-3, "1:1"},
	}

	for _, tt := range tests {
		if got := table.Position(tt.offset).String(); got != tt.want {
			t.Errorf("Position(%d) = %s, want %s", tt.offset, got, tt.want)
		}
	}
}

func TestLineTableOffset(t *testing.T) {
	table := newLineTable([]byte("ab\ncd\nef"))

	tests := []struct {
		line, column int
		want         int
	}{
		{1, 1, 0},
		{2, 1, 3},
		{2, 2, 4},
		{2, 10, 5},
		{3, 2, 7},
		{3, 10, 8},
		{0, 5, 0},
		{9, 1, 8},
	}

	for _, tt := range tests {
		if got := table.Offset(tt.line, tt.column); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.line, tt.column, got, tt.want)
		}
	}
}

func TestLineTableRoundTrip(t *testing.T) {
	src := []byte("<?php\n  echo 1;\r\n\r\n$a;\n")
	table := newLineTable(src)
	for offset := range src {
		pos := table.Position(offset)
		if got := table.Offset(pos.Line, pos.Column); got != offset {
			t.Errorf("Offset(Position(%d)) = %d", offset, got)
		}
	}
}
