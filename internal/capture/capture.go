package capture

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog/log"

	"github.com/user/meetscribe/internal/audio"
)

// framesPerBuffer is the samples per hardware callback. At 16kHz this is
// a delivery every 64ms.
const framesPerBuffer = 1024

// Source delivers audio frames from an input until stopped. Start returns
// once delivery is running; onFrame must not block beyond a copy+enqueue.
type Source interface {
	Start(onFrame func(audio.Frame)) error
	Stop() error
}

// Mic captures mono int16 frames from the default PortAudio input device.
type Mic struct {
	sampleRate int
	stream     *portaudio.Stream
}

func NewMic(sampleRate int) *Mic {
	return &Mic{sampleRate: sampleRate}
}

// Start opens the default input device and begins delivering frames to
// onFrame from the hardware callback. The callback buffer is reused by
// PortAudio, so each frame is copied before it is handed over.
func (m *Mic) Start(onFrame func(audio.Frame)) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, func(in []int16) {
		frame := make(audio.Frame, len(in))
		copy(frame, in)
		onFrame(frame)
	})
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open input device: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start input stream: %w", err)
	}

	m.stream = stream

	log.Info().
		Int("sample_rate", m.sampleRate).
		Int("frames_per_buffer", framesPerBuffer).
		Msg("Microphone capture started")

	return nil
}

// Stop halts and closes the stream; no frames are delivered afterwards.
func (m *Mic) Stop() error {
	if m.stream == nil {
		return nil
	}

	err := m.stream.Stop()
	if cerr := m.stream.Close(); err == nil {
		err = cerr
	}
	m.stream = nil
	portaudio.Terminate()

	if err != nil {
		return fmt.Errorf("failed to stop input stream: %w", err)
	}

	log.Info().Msg("Microphone capture stopped")
	return nil
}

// Device describes one audio input device.
type Device struct {
	Name       string
	Channels   int
	SampleRate float64
	HostAPI    string
	Default    bool
}

// ListDevices enumerates the input-capable audio devices on this host.
func ListDevices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	defaultIn, err := portaudio.DefaultInputDevice()
	if err != nil {
		defaultIn = nil
	}

	var devices []Device
	for _, info := range infos {
		if info.MaxInputChannels == 0 {
			continue
		}
		d := Device{
			Name:       info.Name,
			Channels:   info.MaxInputChannels,
			SampleRate: info.DefaultSampleRate,
			Default:    defaultIn != nil && info.Name == defaultIn.Name,
		}
		if info.HostApi != nil {
			d.HostAPI = info.HostApi.Name
		}
		devices = append(devices, d)
	}

	return devices, nil
}
