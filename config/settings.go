package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

type Settings struct {
	Texture TextureSettings `json:"texture"`
	Server  ServerSettings  `json:"server"`
	Viewer  ViewerSettings  `json:"viewer"`
	Audio   AudioSettings   `json:"audio"`
}

type TextureSettings struct {
	Resolution  int   `json:"resolution"`  // Square texture edge in pixels
	CraterCount int   `json:"craterCount"` // Rocky bodies only
	Seed        int64 `json:"seed"`        // 0 picks a time-based seed
	Strict      bool  `json:"strict"`      // Reject unknown surface types
}

type ServerSettings struct {
	Port             int    `json:"port"`
	UpdateIntervalMs int    `json:"updateIntervalMs"`
	WebDir           string `json:"webDir"`
}

type ViewerSettings struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	TargetFPS int `json:"targetFps"`
}

type AudioSettings struct {
	Enabled    bool `json:"enabled"`
	SampleRate int  `json:"sampleRate"`
}

// Defaults returns the built-in settings
func Defaults() Settings {
	return Settings{
		Texture: TextureSettings{
			Resolution:  1024,
			CraterCount: 20,
			Seed:        0,
			Strict:      true,
		},
		Server: ServerSettings{
			Port:             8080,
			UpdateIntervalMs: 16,
			WebDir:           "web",
		},
		Viewer: ViewerSettings{
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
		Audio: AudioSettings{
			Enabled:    false,
			SampleRate: 44100,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	settings := Defaults()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No %s found, using defaults\n", path)
			return settings, nil
		}
		return settings, errors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&settings); err != nil {
		return settings, errors.Wrapf(err, "parsing %s", path)
	}

	if err := settings.Validate(); err != nil {
		return settings, errors.Wrapf(err, "invalid %s", path)
	}

	fmt.Printf("Loaded settings: %dx%d textures, %d craters per rocky body\n",
		settings.Texture.Resolution, settings.Texture.Resolution, settings.Texture.CraterCount)

	return settings, nil
}

// Validate rejects values the generator cannot work with
func (s Settings) Validate() error {
	if s.Texture.Resolution <= 0 {
		return errors.Errorf("texture.resolution must be positive, got %d", s.Texture.Resolution)
	}
	if s.Texture.CraterCount < 0 {
		return errors.Errorf("texture.craterCount must not be negative, got %d", s.Texture.CraterCount)
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return errors.Errorf("server.port out of range: %d", s.Server.Port)
	}
	if s.Server.UpdateIntervalMs <= 0 {
		return errors.Errorf("server.updateIntervalMs must be positive, got %d", s.Server.UpdateIntervalMs)
	}
	if s.Viewer.Width <= 0 || s.Viewer.Height <= 0 {
		return errors.Errorf("viewer size must be positive, got %dx%d", s.Viewer.Width, s.Viewer.Height)
	}
	if s.Audio.SampleRate <= 0 {
		return errors.Errorf("audio.sampleRate must be positive, got %d", s.Audio.SampleRate)
	}
	return nil
}
