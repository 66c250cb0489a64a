package atlas

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTable = `
# sample: 2x2, 2 frames
2, 2, 2, 0, 0xf81f, 0   // header
0xf81f 0x0001
0x0002 0x0003
# frame 1
4 5
6 0xFFFF
`

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	want := []uint16{2, 2, 2, 0, 0xf81f, 0, 0xf81f, 1, 2, 3, 4, 5, 6, 0xffff}
	if len(table) != len(want) {
		t.Fatalf("expected %d cells, got %d: %v", len(want), len(table), table)
	}
	for i := range want {
		if table[i] != want[i] {
			t.Errorf("cell %d: got 0x%04x, want 0x%04x", i, table[i], want[i])
		}
	}
}

func TestReadTable_LongLine(t *testing.T) {
	// 200x200 frame flattened onto one line, as ExtractCArray returns it
	// for a C initializer written without line breaks.
	var b strings.Builder
	b.WriteString("const uint16_t big[] = {200, 200, 1, 0, 0xf81f, 0,")
	for i := 0; i < 200*200; i++ {
		b.WriteString(" 0x07e0,")
	}
	b.WriteString("};")

	body, err := ExtractCArray(b.String(), "big")
	if err != nil {
		t.Fatalf("ExtractCArray failed: %v", err)
	}
	if len(body) <= 64*1024 {
		t.Fatalf("body is %d bytes, want more than 64 KiB", len(body))
	}

	a, err := Load(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if w, h := a.FrameSize(); w != 200 || h != 200 {
		t.Errorf("frame size = %dx%d, want 200x200", w, h)
	}
	if v, err := a.PixelAt(0, 199, 199); err != nil || v != 0x07e0 {
		t.Errorf("PixelAt(0,199,199) = 0x%04x, %v", v, err)
	}
}

func TestReadTable_BadCell(t *testing.T) {
	tests := []string{
		"1 2 x3",
		"0x10000",
		"-1",
	}
	for _, src := range tests {
		if _, err := ReadTable(strings.NewReader(src)); !errors.Is(err, ErrFormat) {
			t.Errorf("ReadTable(%q): expected ErrFormat, got %v", src, err)
		}
	}
}

func TestWriteTable_RoundTrip(t *testing.T) {
	a := MustParse(buildTable(3, 2, 3, 1, 0xf81f, ModeDirect))

	var buf bytes.Buffer
	if err := WriteTable(&buf, a, "sample"); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	b, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Header() != a.Header() {
		t.Errorf("header mismatch: %+v vs %+v", b.Header(), a.Header())
	}
	at, bt := a.Table(), b.Table()
	for i := range at {
		if at[i] != bt[i] {
			t.Fatalf("cell %d differs: 0x%04x vs 0x%04x", i, at[i], bt[i])
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tbl")
	if err := os.WriteFile(path, []byte(sampleTable), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	a, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if a.FrameCount() != 2 {
		t.Errorf("expected 2 frames, got %d", a.FrameCount())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.tbl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractCArray(t *testing.T) {
	src := `
#pragma once

const uint16_t OTHER_DATA[] = { 9, 9 };

/* block
   comment */
const uint16_t SPRITE_DATA[] = {

    // metadata
    1,      // frame width
    2,      // frame height
    1,      // frames
    0,      // frame loop
    0xf81f, // transparent color
    0,      // 16-bits color mode

    0xf81f,
    0x1234
};
`
	body, err := ExtractCArray(src, "SPRITE_DATA")
	if err != nil {
		t.Fatalf("ExtractCArray failed: %v", err)
	}

	a, err := Load(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, _ := a.PixelAt(0, 0, 1)
	if v != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04x", v)
	}

	if _, err := ExtractCArray(src, "MISSING_DATA"); err == nil {
		t.Error("expected error for missing array")
	}
}
