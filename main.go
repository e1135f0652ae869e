package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"ebiten-depths/config"
	"ebiten-depths/generation"
	"ebiten-depths/rng"
	"ebiten-depths/server"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	genName := flag.String("gen", "random", "generator: cave, bsp, interior, drunkard, rooms or random")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	size := flag.String("size", fmt.Sprintf("%dx%d", config.DefaultLevelWidth, config.DefaultLevelHeight), "level size as WxH")
	depth := flag.Int("depth", 1, "number of chained levels")
	serve := flag.Bool("serve", false, "run the SSH preview server instead of the viewer")
	addr := flag.String("addr", config.DefaultSSHAddr, "SSH listen address")
	hostKey := flag.String("hostkey", "", "SSH host key file (empty = generate one at startup)")
	mute := flag.Bool("mute", false, "disable the step tick and background music")
	volume := flag.Float64("volume", 0.5, "sound volume from 0.0 to 1.0")
	bgm := flag.String("bgm", "", "background music file (.mp3 or .ogg)")
	tilesetFile := flag.String("tileset", "", "Code Page 437 PNG spritesheet with 12x12 glyphs (empty = coloured blocks)")
	flag.Parse()

	if *serve {
		srv := server.NewPreviewServer(*addr, *hostKey, config.DefaultLevelWidth, config.DefaultLevelHeight)
		log.Printf("Try: ssh -t <host> cave -seed 42 (listening on %s)", *addr)
		if err := srv.Start(); err != nil {
			log.Fatalf("SSH server error: %v", err)
		}
		return
	}

	kind, err := generation.ParseDungeonType(*genName)
	if err != nil {
		log.Fatal(err)
	}
	w, h, err := server.ParseSize(*size)
	if err != nil {
		log.Fatal(err)
	}
	if *depth < 1 {
		log.Fatalf("invalid depth %d", *depth)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	gen, err := generation.NewGenerator(kind, w, h, rng.New(*seed), generation.WithHistory())
	if err != nil {
		log.Fatalf("Generator error: %v", err)
	}
	viewer, err := NewHistoryViewer(gen, kind, *seed, *depth)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	if *tilesetFile != "" {
		ts, err := NewTileset(*tilesetFile, config.TileSize)
		if err != nil {
			log.Fatalf("Tileset error: %v", err)
		}
		viewer.SetTileset(ts)
	}
	if !*mute {
		sound := NewAudioSystem()
		defer sound.Close()
		sound.SetVolume(*volume)
		if *bgm != "" {
			if err := sound.PlayBGM(*bgm); err != nil {
				log.Printf("VIEWER: background music disabled: %v", err)
			}
		}
		viewer.SetAudio(sound)
	}
	log.Printf("VIEWER: %v seed %d, %d levels of %dx%d", kind, *seed, *depth, w, h)

	ebiten.SetWindowSize(config.GetScreenDimensions(w, h))
	ebiten.SetWindowTitle(fmt.Sprintf("Depths - %v generator", kind))
	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
