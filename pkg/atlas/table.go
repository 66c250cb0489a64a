package atlas

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Single-line C initializers of large atlases easily exceed bufio's default
// token size.
const maxTableLine = 16 << 20

// ReadTable reads a text atlas table: integers (decimal or 0x-prefixed hex)
// separated by whitespace or commas. "#" and "//" start line comments.
func ReadTable(r io.Reader) ([]uint16, error) {
	var table []uint16

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxTableLine)
	line := 0
	for scanner.Scan() {
		line++
		text := stripComment(scanner.Text())

		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == '\r'
		})
		for _, f := range fields {
			v, err := strconv.ParseUint(f, 0, 16)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad cell %q", ErrFormat, line, f)
			}
			table = append(table, uint16(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}

	return table, nil
}

// Load reads and parses a text atlas table.
func Load(r io.Reader) (*Atlas, error) {
	table, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	return Parse(table)
}

// LoadFile reads and parses a text atlas table from disk.
func LoadFile(path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening atlas file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// WriteTable writes the atlas in the text table format, one frame row per line.
func WriteTable(w io.Writer, a *Atlas, name string) error {
	bw := bufio.NewWriter(w)
	h := a.Header()

	fmt.Fprintf(bw, "# %s: %dx%d, %d frames, %s\n", name, h.FrameWidth, h.FrameHeight, h.FrameCount, h.Mode)
	fmt.Fprintln(bw, "# width height frames loop transparent mode")
	fmt.Fprintf(bw, "%d %d %d %d 0x%04x %d\n", h.FrameWidth, h.FrameHeight, h.FrameCount, h.LoopStart, h.Transparent, uint16(h.Mode))

	for f := 0; f < h.FrameCount; f++ {
		fmt.Fprintf(bw, "# frame %d\n", f)
		for y := 0; y < h.FrameHeight; y++ {
			for x, v := range a.Row(f, y) {
				if x > 0 {
					bw.WriteByte(' ')
				}
				fmt.Fprintf(bw, "0x%04x", v)
			}
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

var blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

// ExtractCArray returns the initializer of a C array declaration such as
// `const uint16_t NAME[] = { ... };` found in src, with block comments removed.
// The result can be fed to ReadTable.
func ExtractCArray(src, name string) (string, error) {
	src = blockComment.ReplaceAllString(src, "")

	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\s*\[[^\]]*\]\s*=\s*\{`)
	if err != nil {
		return "", err
	}
	loc := re.FindStringIndex(src)
	if loc == nil {
		return "", fmt.Errorf("array %s not found", name)
	}

	body := src[loc[1]:]
	end := strings.IndexByte(body, '}')
	if end < 0 {
		return "", fmt.Errorf("%w: array %s is not terminated", ErrFormat, name)
	}
	return body[:end], nil
}

func stripComment(s string) string {
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	return s
}
