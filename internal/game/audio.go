package game

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

type SoundData struct {
	raw []byte
}

// AudioManager plays a short cue for each gameplay event.
type AudioManager struct {
	ctx  *audio.Context
	cues map[Event]*SoundData
}

// cueFiles maps events to optional WAV files and the beep synthesized when
// a file is missing.
var cueFiles = map[Event]struct {
	file       string
	durationMs int
	freq       float64
}{
	EventDot:          {"pellet.wav", 60, 880},
	EventPowerPellet:  {"power.wav", 150, 660},
	EventGhostEaten:   {"ghost.wav", 200, 440},
	EventCaught:       {"death.wav", 400, 220},
	EventLevelCleared: {"level.wav", 300, 990},
}

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

func getAudioContext(enabled bool) *audio.Context {
	if !enabled {
		return nil
	}
	audioOnce.Do(func() {
		audioCtx = audio.NewContext(sampleRate)
	})
	return audioCtx
}

const (
	sampleRate    = 44100
	wavHeaderSize = 44
)

// NewAudioManager loads cues from soundsDir. With enabled false nothing is
// ever played, but the cues are still prepared.
func NewAudioManager(soundsDir string, enabled bool) *AudioManager {
	if soundsDir == "" {
		soundsDir = "assets/sounds"
	}
	am := &AudioManager{ctx: getAudioContext(enabled), cues: make(map[Event]*SoundData, len(cueFiles))}
	for ev, cf := range cueFiles {
		if sd, _ := loadSoundData(soundsDir, cf.file); sd != nil {
			am.cues[ev] = sd
			continue
		}
		am.cues[ev] = &SoundData{raw: synthBeepWAV(sampleRate, cf.durationMs, cf.freq)}
	}
	return am
}

func loadSoundData(dir, file string) (*SoundData, error) {
	b, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return nil, err
	}
	return &SoundData{raw: b}, nil
}

func (am *AudioManager) play(sd *SoundData) {
	if am == nil || am.ctx == nil || sd == nil || len(sd.raw) == 0 {
		return
	}
	// Decode from bytes each time to allow overlapping plays
	stream, err := wav.Decode(am.ctx, bytes.NewReader(sd.raw))
	if err != nil {
		return
	}
	p, err := audio.NewPlayer(am.ctx, stream)
	if err != nil {
		return
	}
	p.Play()
}

// Handle is a Session event hook.
func (am *AudioManager) Handle(ev Event) {
	if am == nil {
		return
	}
	am.play(am.cues[ev])
}

// synthBeepWAV builds a 16-bit mono PCM WAV holding a sine tone at a
// quarter of full scale.
func synthBeepWAV(rate, durationMs int, freq float64) []byte {
	n := rate * durationMs / 1000
	le := binary.LittleEndian
	buf := make([]byte, wavHeaderSize+n*2)

	copy(buf[0:], "RIFF")
	le.PutUint32(buf[4:], uint32(len(buf)-8))
	copy(buf[8:], "WAVEfmt ")
	le.PutUint32(buf[16:], 16)
	le.PutUint16(buf[20:], 1) // PCM
	le.PutUint16(buf[22:], 1) // mono
	le.PutUint32(buf[24:], uint32(rate))
	le.PutUint32(buf[28:], uint32(rate*2))
	le.PutUint16(buf[32:], 2)
	le.PutUint16(buf[34:], 16)
	copy(buf[36:], "data")
	le.PutUint32(buf[40:], uint32(n*2))

	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
		le.PutUint16(buf[wavHeaderSize+i*2:], uint16(int16(v*32767*0.25)))
	}
	return buf
}
