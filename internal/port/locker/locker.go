package locker

import "context"

// AdvisoryLocker serialises critical sections across processes. Lock and
// unlock happen on the same database session.
type AdvisoryLocker interface {
	WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error
}
