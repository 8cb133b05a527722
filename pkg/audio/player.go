package audio

import (
	"bytes"
	"errors"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Gemini TTS output format: 24 kHz, 16-bit little-endian, mono.
const (
	sampleRate   = 24000
	channelCount = 1
)

// Player plays a raw PCM payload to completion.
type Player interface {
	Play(pcm []byte) error
}

// DevicePlayer plays audio through the host output device.
type DevicePlayer struct {
	ctx *oto.Context
}

func NewDevicePlayer() (*DevicePlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready
	return &DevicePlayer{ctx: ctx}, nil
}

func (d *DevicePlayer) Play(pcm []byte) error {
	if len(pcm) == 0 {
		return errors.New("empty audio payload")
	}
	p := d.ctx.NewPlayer(bytes.NewReader(pcm))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return p.Close()
}

// DiscardPlayer drops audio. Used for headless deployments and tests.
type DiscardPlayer struct{}

func (DiscardPlayer) Play([]byte) error { return nil }

// NewPlayer selects an output by config value ("device" or "discard").
func NewPlayer(output string) (Player, error) {
	if output == "discard" {
		return DiscardPlayer{}, nil
	}
	return NewDevicePlayer()
}
