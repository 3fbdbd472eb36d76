package lock

import "errors"

// ErrLocked is returned by TryAcquire when the lock is held by another process.
var ErrLocked = errors.New("lock is held by another process")
