// atlastool is a CLI utility for inspecting and converting sprite atlas tables.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/pocketsprite/internal/assets"
	"github.com/Faultbox/pocketsprite/internal/engine/blit"
	"github.com/Faultbox/pocketsprite/internal/engine/debug"
	"github.com/Faultbox/pocketsprite/internal/engine/display"
	"github.com/Faultbox/pocketsprite/pkg/atlas"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "list", "ls":
		cmdList(args)
	case "render":
		cmdRender(args)
	case "sheet":
		cmdSheet(args)
	case "import":
		cmdImport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`atlastool - sprite atlas table utility

Usage:
  atlastool <command> [options]

Commands:
  info <atlas>                          Show header and frame layout
  list [dir]                            List embedded (and dir) assets
  render [-scale N] [-palette P] <atlas> <frame> <out.bmp|png>
                                        Render one frame to an image
  sheet [-scale N] [-palette P] <atlas> <out.bmp|png>
                                        Render all frames side by side
  import <header.h> <ARRAY> <out.tbl>   Convert a C array to a table file

Atlas and palette names are files on disk or embedded asset names.

Examples:
  atlastool info avatar.tbl
  atlastool render -scale 8 avatar.tbl 3 jump.png
  atlastool sheet -palette hero.yaml avatar_indexed.tbl hero.bmp
  atlastool import sprites.h AVATAR_DATA avatar.tbl`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func loadAtlas(name string) (*atlas.Atlas, error) {
	if _, err := os.Stat(name); err == nil {
		return atlas.LoadFile(name)
	}
	return assets.NewManager().Atlas(name)
}

func loadPalette(name string) (palette.Palette, error) {
	if name == "" {
		return palette.Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return palette.LoadFile(name)
	}
	return assets.NewManager().Palette(name)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: atlastool info <atlas>")
		os.Exit(1)
	}

	a, err := loadAtlas(args[0])
	if err != nil {
		fail(err)
	}
	h := a.Header()

	fmt.Printf("Atlas:       %s\n", args[0])
	fmt.Printf("Frame size:  %dx%d\n", h.FrameWidth, h.FrameHeight)
	fmt.Printf("Frames:      %d (loop from %d)\n", h.FrameCount, h.LoopStart)
	fmt.Printf("Mode:        %s\n", h.Mode)
	fmt.Printf("Transparent: 0x%04x\n", h.Transparent)
	fmt.Printf("Cells:       %d\n", len(a.Table()))
	fmt.Println()
	fmt.Println("Opaque pixels per frame:")

	for f := 0; f < h.FrameCount; f++ {
		opaque := 0
		for y := 0; y < h.FrameHeight; y++ {
			for _, v := range a.Row(f, y) {
				if !a.IsTransparent(v) {
					opaque++
				}
			}
		}
		fmt.Printf("  %3d  %d\n", f, opaque)
	}
}

func cmdList(args []string) {
	m := assets.NewManager()
	defer m.Close()
	if len(args) > 0 {
		if err := m.AddDir(args[0]); err != nil {
			fail(err)
		}
	}

	names, err := m.List()
	if err != nil {
		fail(err)
	}
	for _, n := range names {
		fmt.Println(n)
	}
}

func renderFlags(name string, args []string) (*flag.FlagSet, *int, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	scale := fs.Int("scale", 4, "Integer upscale factor")
	pal := fs.String("palette", "", "Palette for indexed atlases")
	fs.Parse(args)
	return fs, scale, pal
}

func cmdRender(args []string) {
	fs, scale, pal := renderFlags("render", args)
	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: atlastool render [-scale N] [-palette P] <atlas> <frame> <out>")
		os.Exit(1)
	}

	a, err := loadAtlas(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	frame, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fail(fmt.Errorf("bad frame %q", fs.Arg(1)))
	}
	p, err := loadPalette(*pal)
	if err != nil {
		fail(err)
	}

	w, h := a.FrameSize()
	fb := display.NewFramebuffer(w, h)
	if err := blit.DrawWithPalette(fb, p, a, frame, 0, 0); err != nil {
		fail(err)
	}
	save(fs.Arg(2), fb, *scale)
}

func cmdSheet(args []string) {
	fs, scale, pal := renderFlags("sheet", args)
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: atlastool sheet [-scale N] [-palette P] <atlas> <out>")
		os.Exit(1)
	}

	a, err := loadAtlas(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	p, err := loadPalette(*pal)
	if err != nil {
		fail(err)
	}

	w, h := a.FrameSize()
	fb := display.NewFramebuffer(w*a.FrameCount(), h)
	fb.SetPalette(p)
	for f := 0; f < a.FrameCount(); f++ {
		if err := blit.Draw(fb, a, f, f*w, 0); err != nil {
			fail(err)
		}
	}
	save(fs.Arg(1), fb, *scale)
}

func save(path string, fb *display.Framebuffer, scale int) {
	if err := debug.SaveFile(path, fb.RGBA(), scale); err != nil {
		fail(err)
	}
	w, h := fb.Size()
	fmt.Printf("Wrote %s (%dx%d, scale %d)\n", path, w, h, scale)
}

func cmdImport(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: atlastool import <header.h> <ARRAY> <out.tbl>")
		os.Exit(1)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fail(err)
	}
	body, err := atlas.ExtractCArray(string(src), args[1])
	if err != nil {
		fail(err)
	}
	a, err := atlas.Load(strings.NewReader(body))
	if err != nil {
		fail(fmt.Errorf("%s: %w", args[1], err))
	}

	out, err := os.Create(args[2])
	if err != nil {
		fail(err)
	}
	defer out.Close()

	name := strings.TrimSuffix(filepath.Base(args[2]), filepath.Ext(args[2]))
	if err := atlas.WriteTable(out, a, name); err != nil {
		fail(err)
	}

	h := a.Header()
	fmt.Printf("Imported %s: %dx%d, %d frames, %s\n", args[1], h.FrameWidth, h.FrameHeight, h.FrameCount, h.Mode)
}
