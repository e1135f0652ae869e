package server

import (
	"fmt"
	"io"
	"log"

	"github.com/gliderlabs/ssh"

	"ebiten-depths/generation"
	"ebiten-depths/render"
	"ebiten-depths/rng"
)

// PreviewServer answers each SSH session with freshly generated levels.
type PreviewServer struct {
	addr          string
	hostKey       string
	defaultWidth  int
	defaultHeight int
}

// NewPreviewServer creates a preview server bound to addr. An empty hostKey
// lets the server generate a throwaway key.
func NewPreviewServer(addr, hostKey string, defaultWidth, defaultHeight int) *PreviewServer {
	return &PreviewServer{
		addr:          addr,
		hostKey:       hostKey,
		defaultWidth:  defaultWidth,
		defaultHeight: defaultHeight,
	}
}

// Start begins listening for SSH connections.
func (s *PreviewServer) Start() error {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}

	if s.hostKey != "" {
		if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
			return fmt.Errorf("set host key: %w", err)
		}
	}

	log.Printf("SSH: preview server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *PreviewServer) handleSession(sess ssh.Session) {
	req, err := ParseRequest(sess.Command(), s.defaultWidth, s.defaultHeight, sess.Stderr())
	if err != nil {
		fmt.Fprintf(sess.Stderr(), "Error: %v\r\n", err)
		fmt.Fprintf(sess.Stderr(), "Usage: <cave|bsp|interior|drunkard|rooms|random> [-seed N] [-size WxH] [-depth N]\r\n")
		sess.Exit(2)
		return
	}

	_, _, colour := sess.Pty()
	log.Printf("SSH: %s requested %v %dx%d depth %d seed %d",
		sess.User(), req.Kind, req.Width, req.Height, req.Depth, req.Seed)

	if err := WriteLevels(sess, req, colour); err != nil {
		log.Printf("SSH: generation failed for %s: %v", sess.User(), err)
		fmt.Fprintf(sess.Stderr(), "Error: %v\r\n", err)
		sess.Exit(1)
		return
	}
	sess.Exit(0)
}

// WriteLevels generates the requested levels and writes them to w, in colour
// when the client has a terminal. A colour session is cleared first.
func WriteLevels(w io.Writer, req PreviewRequest, colour bool) error {
	gen, err := generation.NewGenerator(req.Kind, req.Width, req.Height, rng.New(req.Seed))
	if err != nil {
		return err
	}
	levels, err := generation.BuildLevels(gen, req.Depth)
	if err != nil {
		return err
	}

	if colour {
		if _, err := io.WriteString(w, render.ClearScreen()); err != nil {
			return err
		}
	}
	for _, level := range levels {
		down, _ := level.StairsDown()
		header := fmt.Sprintf("%v depth %d seed %d  %dx%d  down stairs (%d,%d)  %d spawn areas",
			req.Kind, level.Depth, req.Seed, level.Map.Width, level.Map.Height,
			down.X, down.Y, len(level.SpawnAreas))

		var body string
		if colour {
			header += "\r\n"
			body = render.ANSI(level.Map) + "\r\n"
		} else {
			header += "\n"
			body = render.ASCII(level.Map) + "\n"
		}
		if _, err := io.WriteString(w, header+body); err != nil {
			return err
		}
	}
	return nil
}
