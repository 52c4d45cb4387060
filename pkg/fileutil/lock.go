package fileutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/thoreinstein/unattend/internal/errors"
)

// lockRetryDelay is how often a held lock is retried.
const lockRetryDelay = 50 * time.Millisecond

// ErrLocked is returned when a lock could not be acquired before ctx ended.
var ErrLocked = errors.New("file is locked by another process")

// LockPath returns the advisory lock file guarding path. Lock files live in
// the temp directory so they never clutter the report location.
func LockPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "unattend-"+hex.EncodeToString(sum[:8])+".lock")
}

// WithLock runs fn while holding the advisory lock for path, waiting until
// ctx is done for another holder to release it.
func WithLock(ctx context.Context, path string, fn func() error) error {
	fl := flock.New(LockPath(path))

	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "acquiring lock")
	}
	if !ok {
		return errors.Wrapf(ErrLocked, "%s", path)
	}
	defer fl.Unlock()

	return fn()
}
