package device

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WaitForDevice blocks until path exists, ctx is done, or timeout expires.
// A path that already exists returns immediately. The parent directory must
// exist; it is watched for the node being created.
func WaitForDevice(ctx context.Context, path string, timeout time.Duration) error {
	if path == "" {
		return ErrNoPath
	}
	if exists(path) {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("device: create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("device: watch %s: %w", dir, err)
	}

	// The node may have appeared between the first check and Add.
	if exists(path) {
		return nil
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-expired:
			return fmt.Errorf("%w: %s after %s", ErrDeviceTimeout, path, timeout)

		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("device: watcher closed")
			}
			if ev.Has(fsnotify.Create) && exists(path) {
				return nil
			}

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("device: watcher closed")
			}
			return fmt.Errorf("device: watch %s: %w", dir, err)
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
