// Package kittyimg writes images to the terminal with the Kitty graphics
// protocol.
package kittyimg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

const chunkSize = 4096 // max base64 bytes per escape sequence

// Supported reports whether the terminal is known to understand the Kitty
// graphics protocol.
func Supported() bool {
	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "",
		os.Getenv("TERM_PROGRAM") == "WezTerm",
		os.Getenv("GHOSTTY_RESOURCES_DIR") != "":
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// EncodeImage returns the escape sequence that displays img over cols x rows
// terminal cells at the cursor position.
func EncodeImage(img image.Image, cols, rows int) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return EncodePNG(buf.Bytes(), cols, rows), nil
}

// EncodePNG is EncodeImage for already encoded PNG data. It returns an empty
// string when data is empty.
func EncodePNG(data []byte, cols, rows int) string {
	if len(data) == 0 {
		return ""
	}

	b64 := base64.StdEncoding.EncodeToString(data)

	// a=T transmit and display, f=100 PNG, C=1 keep the cursor, c/r size in cells,
	// m=1 while more chunks follow
	var sb strings.Builder
	for i := 0; i < len(b64); i += chunkSize {
		end := min(i+chunkSize, len(b64))
		more := 0
		if end < len(b64) {
			more = 1
		}
		if i == 0 {
			fmt.Fprintf(&sb, "\x1b_Ga=T,f=100,q=2,C=1,c=%d,r=%d,m=%d;%s\x1b\\", cols, rows, more, b64[i:end])
		} else {
			fmt.Fprintf(&sb, "\x1b_Gm=%d;%s\x1b\\", more, b64[i:end])
		}
	}
	return sb.String()
}

// DeleteAll returns the escape sequence that removes every image placed on
// screen.
func DeleteAll() string {
	return "\x1b_Ga=d,d=A,q=2;\x1b\\"
}

// Placeholder draws a box of cols x rows cells with label centered, used
// where no image can be shown.
func Placeholder(cols, rows int, label string) string {
	if cols < 4 || rows < 2 {
		return ""
	}

	inner := cols - 2
	label = runewidth.Truncate(label, inner, "")
	width := runewidth.StringWidth(label)

	lines := make([]string, 0, rows)
	lines = append(lines, "┌"+strings.Repeat("─", inner)+"┐")
	for i := 1; i < rows-1; i++ {
		if i == rows/2 && label != "" {
			pad := (inner - width) / 2
			lines = append(lines, "│"+strings.Repeat(" ", pad)+label+strings.Repeat(" ", inner-width-pad)+"│")
			continue
		}
		lines = append(lines, "│"+strings.Repeat(" ", inner)+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", inner)+"┘")

	return strings.Join(lines, "\n")
}
