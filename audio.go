package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

const sampleRate = 44100

// AudioSystem plays the viewer's step tick and optional background track
type AudioSystem struct {
	audioContext *audio.Context
	bgmPlayer    *audio.Player
	bgmFile      *os.File
	tick         []byte
	volume       float64
}

// NewAudioSystem creates the audio context and renders the step tick
func NewAudioSystem() *AudioSystem {
	return &AudioSystem{
		audioContext: audio.NewContext(sampleRate),
		tick:         renderTick(880, 0.03),
		volume:       0.5,
	}
}

// renderTick synthesises a short decaying sine as 16-bit stereo PCM
func renderTick(freq, seconds float64) []byte {
	n := int(seconds * sampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		decay := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*t) * decay * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// PlayTick plays the step sound once
func (s *AudioSystem) PlayTick() {
	p := s.audioContext.NewPlayerFromBytes(s.tick)
	p.SetVolume(s.volume)
	p.Play()
}

// PlayBGM starts looping background music from an mp3 or ogg file
func (s *AudioSystem) PlayBGM(path string) error {
	s.StopBGM()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}

	var stream interface {
		io.ReadSeeker
		Length() int64
	}
	switch filepath.Ext(path) {
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, file)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, file)
	default:
		file.Close()
		return fmt.Errorf("unsupported audio format: %s", path)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to decode audio file: %w", err)
	}

	loop := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := s.audioContext.NewPlayer(loop)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create audio player: %w", err)
	}

	s.bgmPlayer = player
	s.bgmFile = file
	s.bgmPlayer.SetVolume(s.volume)
	s.bgmPlayer.Play()
	return nil
}

// StopBGM stops the background music and closes its file
func (s *AudioSystem) StopBGM() {
	if s.bgmPlayer != nil {
		s.bgmPlayer.Close()
		s.bgmPlayer = nil
	}
	if s.bgmFile != nil {
		s.bgmFile.Close()
		s.bgmFile = nil
	}
}

// SetVolume sets the volume for every sound, clamped to 0.0..1.0
func (s *AudioSystem) SetVolume(volume float64) {
	volume = math.Max(0, math.Min(1, volume))
	s.volume = volume
	if s.bgmPlayer != nil {
		s.bgmPlayer.SetVolume(volume)
	}
}

func (s *AudioSystem) Close() {
	s.StopBGM()
}
