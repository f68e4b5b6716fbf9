package pk2

// Locker serializes access to an archive's underlying stream across
// handles. *sync.Mutex already satisfies this with its existing Lock/Unlock
// methods and can be passed to WithLocker to share an archive across
// goroutines; the default is a no-op locker, and NoopLocker is available for
// callers who have already arranged external mutual exclusion (e.g.
// single-goroutine batch tools) and want to skip the overhead.
//
// This replaces the reference implementation's generic Lock/LockChoice
// trait pair: Go's method sets make an interface the natural fit where the
// original needed an associated-type trait to pick sync vs. single-threaded
// behavior at compile time.
type Locker interface {
	Lock()
	Unlock()
}

// NoopLocker is a Locker that does nothing, for archives only ever touched
// from one goroutine at a time.
type NoopLocker struct{}

func (NoopLocker) Lock()   {}
func (NoopLocker) Unlock() {}
