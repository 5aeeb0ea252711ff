package middleware

import (
	"context"

	"hotelpremier/internal/app/commands"
)

// ExclusiveCommand is implemented by commands that must not run
// concurrently with other commands touching the same resources.
type ExclusiveCommand interface {
	commands.Command
	LockKeys() []string
}

// KeyedLocker serializes work per key. Acquire blocks until every key is
// held and returns the release function.
type KeyedLocker interface {
	Acquire(keys []string) func()
}

// Locking holds an exclusive command's locks for the whole dispatch,
// including any transaction opened and committed by inner middleware.
// Releasing before the commit would let a concurrent command read state
// that does not yet include this command's uncommitted writes.
func Locking(locks KeyedLocker) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			ex, ok := cmd.(ExclusiveCommand)
			if !ok || locks == nil {
				return nextFn(ctx, cmd)
			}
			keys := ex.LockKeys()
			if len(keys) == 0 {
				return nextFn(ctx, cmd)
			}
			release := locks.Acquire(keys)
			defer release()
			return nextFn(ctx, cmd)
		})
	}
}
