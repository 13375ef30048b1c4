package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"time"

	"solarsystem/audio"
	"solarsystem/config"
	"solarsystem/core"
	"solarsystem/noise"
	"solarsystem/texture"
	"solarsystem/viewer"
)

// Outermost orbit in the catalog; the chime pitch scales against it
const outerOrbit = 135

func main() {
	// The native viewer must own the main OS thread
	runtime.LockOSThread()

	var (
		configPath = flag.String("config", "settings.json", "Settings file")
		mode       = flag.String("mode", "server", "Frontend (server, native)")
		port       = flag.Int("port", 0, "HTTP port, overrides settings")
		seed       = flag.Int64("seed", 0, "Noise seed, overrides settings")
		resolution = flag.Int("resolution", 0, "Texture edge in pixels, overrides settings")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *port != 0 {
		settings.Server.Port = *port
	}
	if *seed != 0 {
		settings.Texture.Seed = *seed
	}
	if *resolution != 0 {
		settings.Texture.Resolution = *resolution
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	if settings.Texture.Seed == 0 {
		settings.Texture.Seed = time.Now().UnixNano()
	}

	fmt.Println("=== Solar System ===")
	fmt.Printf("Seed: %d\n", settings.Texture.Seed)
	fmt.Printf("Texture resolution: %dx%d\n", settings.Texture.Resolution, settings.Texture.Resolution)

	rng := rand.New(rand.NewSource(settings.Texture.Seed))
	synth := texture.NewSynthesizer(noise.NewPerlin(rng), rng, texture.Options{
		CraterCount: settings.Texture.CraterCount,
		Strict:      settings.Texture.Strict,
	})

	start := time.Now()
	system, err := core.NewSolarSystem(core.Catalog(), synth, settings.Texture.Resolution, rng)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	fmt.Printf("Scene ready: %d bodies in %.2fs\n", len(system.Bodies), time.Since(start).Seconds())

	chime := audio.NewChime(settings.Audio.SampleRate, outerOrbit)
	if settings.Audio.Enabled {
		if err := chime.Init(); err != nil {
			// Non-fatal, the scene runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	defer chime.Close()
	onFocus := func(b *core.Body) {
		if err := chime.Play(b.Distance); err != nil {
			log.Printf("Chime failed: %v", err)
		}
	}

	switch *mode {
	case "server":
		server := NewServer(system, settings.Server.WebDir, time.Duration(settings.Server.UpdateIntervalMs)*time.Millisecond)
		server.onFocus = onFocus
		if err := server.ListenAndServe(settings.Server.Port); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case "native":
		v := viewer.New(system, settings.Viewer)
		v.OnFocus = onFocus
		if err := v.Run(); err != nil {
			log.Fatalf("Viewer failed: %v", err)
		}
	default:
		log.Fatalf("Unknown mode: %s", *mode)
	}
}
