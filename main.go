/*
usdfixtures writes the sample scene layers other tools test against. It reads
optional settings from usdfixtures.toml in the working directory.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/usdfixtures/scenegen/assets"
	"github.com/spaghettifunk/usdfixtures/scenegen/core"
	"github.com/spaghettifunk/usdfixtures/scenegen/descriptor"
	"github.com/spaghettifunk/usdfixtures/scenegen/fixtures"
)

func main() {
	cfg, err := core.LoadConfig(core.ConfigPath)
	if err != nil {
		core.LogFatal("%s", err)
	}
	if err := core.SetLogLevel(cfg.LogLevel); err != nil {
		core.LogFatal("log_level: %s", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		core.LogFatal("%s", err)
	}
	written, err := fixtures.Generate(cfg.OutputDir)
	if err != nil {
		core.LogFatal("%s", err)
	}
	core.LogInfo("generated %d built-in fixtures in %s", len(written), cfg.OutputDir)

	if cfg.DescriptorDir == "" {
		return
	}
	if !cfg.Watch {
		built, err := descriptor.BuildDir(cfg.DescriptorDir, cfg.OutputDir)
		if err != nil {
			core.LogFatal("%s", err)
		}
		core.LogInfo("generated %d descriptor fixtures from %s", len(built), cfg.DescriptorDir)
		return
	}

	w, err := assets.NewWatcher(cfg.DescriptorDir, cfg.OutputDir)
	if err != nil {
		core.LogFatal("%s", err)
	}
	if err := w.Start(); err != nil {
		core.LogFatal("%s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	failures := 0
	for {
		select {
		case r := <-w.Results():
			if r.Err != nil {
				failures++
			}
		case <-sigCh:
			_ = w.Close()
			core.LogInfo("stopped watching, %d failed builds", failures)
			return
		}
	}
}
