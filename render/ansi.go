package render

import (
	"image/color"
	"strconv"
	"strings"

	"ebiten-depths/components"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"
)

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen() string {
	return CSI + "2J" + CSI + "H"
}

// ASCII draws m as plain text, one line per row.
func ASCII(m components.Map) string {
	mapping := components.NewTileMappingComponent()

	var sb strings.Builder
	sb.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sb.WriteRune(Glyph(&m, mapping, x, y))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ANSI draws m with 24-bit colour escapes taken from the tile mapping.
// Rows end in CRLF so the output reads correctly on a raw PTY.
func ANSI(m components.Map) string {
	mapping := components.NewTileMappingComponent()

	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			def := mapping.GetTileDefinition(m.Tile(x, y))
			writeCellSGR(&sb, def.FG, def.BG, Glyph(&m, mapping, x, y))
		}
		sb.WriteString(Reset)
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// writeCellSGR writes one cell with a combined SGR so no state leaks
// between cells. A nil background is drawn black.
func writeCellSGR(sb *strings.Builder, fg, bg color.Color, ch rune) {
	fr, fgG, fb := rgb(fg)
	br, bgG, bb := rgb(bg)

	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(fr)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(fgG)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(fb)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(br)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bgG)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bb)))
	sb.WriteByte('m')
	sb.WriteRune(ch)
}

func rgb(c color.Color) (uint8, uint8, uint8) {
	if c == nil {
		return 0, 0, 0
	}
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
