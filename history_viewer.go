package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ebiten-depths/components"
	"ebiten-depths/config"
	"ebiten-depths/generation"
	"ebiten-depths/render"
)

// levelHistory is the recorded build of one level
type levelHistory struct {
	depth     int
	snapshots []generation.Snapshot
}

// HistoryViewer implements ebiten.Game and replays the recorded steps of
// every generated level
type HistoryViewer struct {
	kind     generation.DungeonType
	seed     int64
	levels   []levelHistory
	level    int
	step     int
	autoplay bool
	frames   int
	mapping  *components.TileMappingComponent
	tile     *ebiten.Image
	tileset  *Tileset
	audio    *AudioSystem
	width    int
	height   int
}

// NewHistoryViewer builds depth chained levels with gen and keeps their
// history for replay. gen should be created with generation.WithHistory.
func NewHistoryViewer(gen generation.MapGenerator, kind generation.DungeonType, seed int64, depth int) (*HistoryViewer, error) {
	v := &HistoryViewer{
		kind:    kind,
		seed:    seed,
		mapping: components.NewTileMappingComponent(),
		tile:    ebiten.NewImage(config.TileSize, config.TileSize),
	}
	v.tile.Fill(color.White)

	var prev *components.Position
	for d := 1; d <= depth; d++ {
		level, err := generation.BuildLevel(gen, prev)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", d, err)
		}

		snapshots := gen.History()
		if len(snapshots) == 0 {
			snapshots = []generation.Snapshot{{Map: level.Map, Label: "final"}}
		}
		v.levels = append(v.levels, levelHistory{depth: d, snapshots: snapshots})

		down, _ := level.StairsDown()
		prev = &down
		v.width, v.height = level.Map.Width, level.Map.Height
	}
	return v, nil
}

// SetTileset switches from coloured blocks to glyphs drawn from ts
func (v *HistoryViewer) SetTileset(ts *Tileset) {
	v.tileset = ts
}

// SetAudio enables a tick sound on every history step
func (v *HistoryViewer) SetAudio(a *AudioSystem) {
	v.audio = a
}

// keyRepeat reports a press on the first frame and then every few frames
// while the key is held
func keyRepeat(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 15 && d%3 == 0)
}

// Update handles input and autoplay
func (v *HistoryViewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.autoplay = !v.autoplay
		v.frames = 0
	}

	level, step := v.level, v.step
	last := len(v.levels[v.level].snapshots) - 1
	switch {
	case keyRepeat(ebiten.KeyArrowRight):
		v.autoplay = false
		v.step = min(v.step+1, last)
	case keyRepeat(ebiten.KeyArrowLeft):
		v.autoplay = false
		v.step = max(v.step-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.step = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		v.step = last
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && v.level < len(v.levels)-1:
		v.level++
		v.step = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && v.level > 0:
		v.level--
		v.step = 0
	}

	if v.autoplay {
		v.frames++
		if v.frames >= config.AutoplayFrames {
			v.frames = 0
			if v.step < len(v.levels[v.level].snapshots)-1 {
				v.step++
			} else {
				v.autoplay = false
			}
		}
	}

	if v.audio != nil && (v.step != step || v.level != level) {
		v.audio.PlayTick()
	}
	return nil
}

// Draw draws the current snapshot and the status bar
func (v *HistoryViewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	history := v.levels[v.level]
	snap := history.snapshots[v.step]
	m := snap.Map

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			// Solid rock stays black so the carved shapes stand out
			glyph := render.Glyph(&m, v.mapping, x, y)
			if glyph == ' ' {
				continue
			}
			def := v.mapping.GetTileDefinition(m.Tile(x, y))
			px := float64(x * config.TileSize)
			py := float64(y*config.TileSize + config.StatusBarHeight)

			if v.tileset == nil {
				v.drawBlock(screen, px, py, def.FG)
				continue
			}
			if def.BG != nil {
				v.drawBlock(screen, px, py, def.BG)
			}
			v.tileset.DrawTile(screen, glyph, px, py, def.FG)
		}
	}

	status := fmt.Sprintf("%v seed %d  level %d/%d  step %d/%d  %s",
		v.kind, v.seed, history.depth, len(v.levels), v.step+1, len(history.snapshots), snap.Label)
	if v.autoplay {
		status += "  [playing]"
	}
	ebitenutil.DebugPrintAt(screen, status, 4, 0)
	ebitenutil.DebugPrintAt(screen, "left/right step  up/down level  space play  F fullscreen  esc quit", 4, 14)
}

func (v *HistoryViewer) drawBlock(screen *ebiten.Image, px, py float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(px, py)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(v.tile, op)
}

// Layout implements ebiten.Game's Layout
func (v *HistoryViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GetScreenDimensions(v.width, v.height)
}
