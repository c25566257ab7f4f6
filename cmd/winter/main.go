package main

import (
	"context"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"winter-scene/internal/anim"
	"winter-scene/internal/audio"
	"winter-scene/internal/audio/device"
	"winter-scene/internal/commands"
	"winter-scene/internal/debug"
	"winter-scene/internal/engineconfig"
	"winter-scene/internal/env"
	"winter-scene/internal/fonts"
	"winter-scene/internal/graphics"
	"winter-scene/internal/logger"
	"winter-scene/internal/render"
	"winter-scene/internal/scene"
	"winter-scene/internal/terminal"
)

func main() {
	log := logger.New()
	if err := env.Load(".env"); err != nil {
		log.Warnf("%v", err)
	}

	// saved is written back on exit; environment overrides only apply to this run.
	saved, _ := engineconfig.Load()
	prefs := saved
	prefs.AssetRoot = env.String(env.AssetRoot, prefs.AssetRoot)
	prefs.Manifest = env.String(env.Manifest, prefs.Manifest)
	prefs.Font = env.String(env.Font, prefs.Font)
	prefs.PanelCSS = env.String(env.PanelCSS, prefs.PanelCSS)
	if on, ok := env.Bool(env.Sound); ok {
		prefs.SoundOn = on
	}

	manifest := scene.DefaultManifest()
	if prefs.Manifest != "" {
		m, err := scene.LoadManifest(prefs.Manifest)
		if err != nil {
			log.Errorf("%v, using the built-in scene", err)
		} else {
			manifest = m
		}
	}

	var out audio.Output = audio.Silent{Rate: device.SampleRate}
	if spk, err := device.Open(); err != nil {
		log.Warnf("audio disabled: %v", err)
	} else {
		out = spk
		defer spk.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := scene.New(ctx, scene.Options{
		AssetRoot:  prefs.AssetRoot,
		Manifest:   manifest,
		FlakeCount: prefs.FlakeCount,
		TreeScale:  prefs.TreeScale,
		Width:      prefs.WindowWidth,
		Height:     prefs.WindowHeight,
		Audio:      out,
		Log:        log,
	})
	gui := app.BuildPanel()
	if prefs.PanelCSS != "" {
		if err := gui.LoadStylesheet(filepath.Join(prefs.AssetRoot, prefs.PanelCSS)); err != nil {
			log.Warnf("%v, keeping the built-in panel style", err)
		}
	}

	dbg := debug.New(rl.GetFPS)
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowMemAlloc(prefs.ShowMemAlloc)

	reg := commands.NewRegistry()
	app.RegisterCommands(reg, dbg)
	term := terminal.New(log, reg)

	if prefs.SoundOn {
		app.SetSound(true)
	}

	renderer := render.New(prefs.AssetRoot, manifest.Background, log)
	overlay := render.NewOverlay()
	input := &graphics.Input{App: app, GUI: gui, Term: term}
	clock := anim.NewClock()

	start := func() {
		if _, full, err := fonts.FindFont(prefs.AssetRoot, prefs.Font); err == nil {
			if err := overlay.LoadFont(full); err != nil {
				log.Warnf("%v", err)
			}
		}
		app.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
		clock.Delta()
	}
	update := func() {
		input.Update()
		app.Frame(clock.Delta())
	}
	draw := func() {
		renderer.Draw(app)
		w, h := int32(app.Width), int32(app.Height)
		overlay.DrawItems(gui.Layout(w, h))
		if app.ShowInfo {
			overlay.DrawInspector(app.Info(), w, h)
		}
		overlay.DrawTerminal(term)
		overlay.DrawDebug(dbg)
	}
	shutdown := func() {
		cancel()
		saved.ShowFPS = dbg.ShowFPS
		saved.ShowMemAlloc = dbg.ShowMemAlloc
		saved.SoundOn = app.SoundOn
		saved.WindowWidth, saved.WindowHeight = app.Width, app.Height
		if err := engineconfig.Save(saved); err != nil {
			log.Errorf("%v", err)
		}
		overlay.Unload()
		renderer.Unload()
	}

	graphics.Run(graphics.Window{
		Width:  prefs.WindowWidth,
		Height: prefs.WindowHeight,
		Title:  "Winter scene",
	}, start, update, draw, shutdown)
}
