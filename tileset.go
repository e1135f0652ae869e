package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// srcTileSize is the glyph size inside a Code Page 437 sheet
const srcTileSize = 12

// cp437 maps the box drawing runes the renderer emits to their sheet index
var cp437 = map[rune]int{
	'│': 179, '┤': 180, '┐': 191, '└': 192, '┴': 193, '┬': 194,
	'├': 195, '─': 196, '┼': 197, '┘': 217, '┌': 218,
}

// Tileset draws glyphs from a 16x16 Code Page 437 spritesheet
type Tileset struct {
	Image    *ebiten.Image
	TileSize int
	Width    int // Number of tiles horizontally in the tileset
	Height   int // Number of tiles vertically in the tileset
}

// NewTileset loads a tileset from a PNG file
func NewTileset(filename string, tileSize int) (*Tileset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}

	sheet := ebiten.NewImageFromImage(img)
	bounds := sheet.Bounds()
	return &Tileset{
		Image:    sheet,
		TileSize: tileSize,
		Width:    bounds.Dx() / srcTileSize,
		Height:   bounds.Dy() / srcTileSize,
	}, nil
}

// GetTileCoords returns the sheet position of a glyph
func (t *Tileset) GetTileCoords(char rune) (int, int) {
	index := int(char)
	if code, ok := cp437[char]; ok {
		index = code
	}
	return index % 16, index / 16
}

// DrawTile draws char at pixel offset (px, py) tinted with clr
func (t *Tileset) DrawTile(target *ebiten.Image, char rune, px, py float64, clr color.Color) {
	tx, ty := t.GetTileCoords(char)
	if tx >= t.Width || ty >= t.Height {
		tx, ty = t.GetTileCoords('?')
	}

	op := &ebiten.DrawImageOptions{}
	scale := float64(t.TileSize) / srcTileSize
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(px, py)
	if clr != nil {
		op.ColorScale.ScaleWithColor(clr)
	}

	sx, sy := tx*srcTileSize, ty*srcTileSize
	rect := image.Rect(sx, sy, sx+srcTileSize, sy+srcTileSize)
	target.DrawImage(t.Image.SubImage(rect).(*ebiten.Image), op)
}
