package delivery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/provision/internal/logger"
)

// DefaultLockLifetime is the age after which a marker without a readable
// owner PID is considered stale.
const DefaultLockLifetime = 30 * time.Minute

// ErrLocked is returned when another delivery holds the lock.
var ErrLocked = errors.New("another delivery is running now")

// Lock is a marker file guarding one delivery at a time.
// The marker stores the owner PID. A marker whose owner is alive is held no
// matter how old it is; a marker whose owner is gone is reclaimed at once.
type Lock struct {
	// Path is the marker file location.
	Path string
	// Lifetime applies only to markers without a readable PID.
	// DefaultLockLifetime when zero.
	Lifetime time.Duration
}

// Acquire creates the marker and returns a function that removes it.
func (l *Lock) Acquire(ctx context.Context) (func(), error) {
	path := filepath.Clean(l.Path)

	if l.isHeld(ctx, path) {
		return nil, ErrLocked
	}

	marker, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrLocked
		}

		return nil, fmt.Errorf("create lock marker: %w", err)
	}

	_, _ = fmt.Fprintf(marker, "%d\n", os.Getpid())

	if err = marker.Close(); err != nil {
		return nil, fmt.Errorf("close lock marker: %w", err)
	}

	release := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.WarnKV(ctx, "Unable to remove lock marker", "path", path, "error", err)
		}
	}

	return release, nil
}

// isHeld checks the marker and removes it when it is stale.
func (l *Lock) isHeld(ctx context.Context, path string) bool {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}

	if err != nil {
		logger.WarnKV(ctx, "Unable to read lock marker", "path", path, "error", err)

		return false
	}

	if pid, ok := parsePID(contents); ok {
		alive, err := processAlive(pid)
		if err != nil {
			logger.WarnKV(ctx, "Unable to check lock owner", "pid", pid, "error", err)

			return true
		}

		if alive {
			return true
		}

		logger.InfoKV(ctx, "The lock owner is gone, reclaiming the marker", "path", path, "pid", pid)

		return !removeMarker(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return !errors.Is(err, os.ErrNotExist)
	}

	lifetime := l.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultLockLifetime
	}

	if time.Since(info.ModTime()) <= lifetime {
		return true
	}

	logger.InfoKV(ctx, "The lock marker has no owner and is too old, reclaiming it", "path", path)

	return !removeMarker(path)
}

func parsePID(contents []byte) (int, bool) {
	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	return pid, true
}

// processAlive reports whether a process with the PID exists.
func processAlive(pid int) (bool, error) {
	process, err := ps.FindProcess(pid)
	if err != nil {
		return false, err
	}

	return process != nil, nil
}

// removeMarker deletes a stale marker and reports whether it is gone.
func removeMarker(path string) bool {
	err := os.Remove(path)

	return err == nil || errors.Is(err, os.ErrNotExist)
}
