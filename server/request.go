package server

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ebiten-depths/generation"
)

// Limits on what a remote session may ask for
const (
	MaxLevelSide = 200
	MinLevelSide = 5
	MaxDepth     = 10
)

// PreviewRequest is a parsed session command
type PreviewRequest struct {
	Kind   generation.DungeonType
	Seed   int64
	Width  int
	Height int
	Depth  int
}

// ParseRequest reads "<generator> [-seed N] [-size WxH] [-depth N]".
// An empty command asks for a random generator; seed 0 picks one from the clock.
func ParseRequest(args []string, defaultWidth, defaultHeight int, usage io.Writer) (PreviewRequest, error) {
	req := PreviewRequest{Kind: generation.DungeonTypeRandom}

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		kind, err := generation.ParseDungeonType(args[0])
		if err != nil {
			return req, err
		}
		req.Kind = kind
		args = args[1:]
	}

	fs := flag.NewFlagSet(req.Kind.String(), flag.ContinueOnError)
	fs.SetOutput(usage)
	seed := fs.Int64("seed", 0, "random seed (0 = random)")
	size := fs.String("size", fmt.Sprintf("%dx%d", defaultWidth, defaultHeight), "map size as WxH")
	depth := fs.Int("depth", 1, "number of chained levels")
	if err := fs.Parse(args); err != nil {
		return req, err
	}
	if fs.NArg() > 0 {
		return req, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	w, h, err := ParseSize(*size)
	if err != nil {
		return req, err
	}
	if *depth < 1 || *depth > MaxDepth {
		return req, fmt.Errorf("invalid depth %d (1..%d)", *depth, MaxDepth)
	}

	req.Seed = *seed
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	req.Width, req.Height, req.Depth = w, h, *depth
	return req, nil
}

// ParseSize parses a "WxH" size string
func ParseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < MinLevelSide || w > MaxLevelSide {
		return 0, 0, fmt.Errorf("invalid width %q (%d..%d)", parts[0], MinLevelSide, MaxLevelSide)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < MinLevelSide || h > MaxLevelSide {
		return 0, 0, fmt.Errorf("invalid height %q (%d..%d)", parts[1], MinLevelSide, MaxLevelSide)
	}
	return w, h, nil
}
