package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	assert.Equal(t, "##........", ProgressBar(0.286, 10))
	assert.Equal(t, "..........", ProgressBar(0, 10))
	assert.Equal(t, "##########", ProgressBar(1, 10))
	assert.Equal(t, "#####", ProgressBar(3, 1), "clamped to minimum width and full")
	assert.Equal(t, ".....", ProgressBar(-1, 0))
}

func TestPanel_FramesLines(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	out := Panel([]string{"a", "bbb"})
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "+-----+", lines[0])
	assert.Equal(t, "| a   |", lines[1])
	assert.Equal(t, "| bbb |", lines[2])
}

func TestOKFail(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	assert.Equal(t, "x added\n✖ nope\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "ünï...", Truncate("ünïcödé!", 6))
}

func TestSetTheme_UnknownFallsBack(t *testing.T) {
	SetTheme("vapor")
	assert.Equal(t, "☐", Current().BoxUnchecked)
	SetTheme("neon")
	assert.Equal(t, "◻", Current().BoxUnchecked)
	SetTheme("classic")
}
