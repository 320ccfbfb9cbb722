package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watch reloads the configuration at configPath every time the file is written
// and hands the result to onChange. It blocks until ctx is done.
// Reload failures are logged and the previous configuration stays in effect.
func Watch(ctx context.Context, configPath string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create config watcher")
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, so watch the directory.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		return errors.Wrapf(err, "failed to watch '%s'", configPath)
	}

	target := filepath.Clean(configPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}

			cfg, err := Load(configPath)
			if err != nil {
				logrus.WithError(err).WithField("path", configPath).Warn("config reload failed")
				continue
			}
			if err := cfg.Server.Validate(); err != nil {
				logrus.WithError(err).WithField("path", configPath).Warn("reloaded config is invalid")
				continue
			}
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("config watcher error")
		}
	}
}
