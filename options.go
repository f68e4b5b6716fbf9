package pk2

// Option configures an Archive at open/create time.
type Option func(*archiveConfig)

type archiveConfig struct {
	locker         Locker
	autoTouchMTime bool
}

func defaultConfig() archiveConfig {
	return archiveConfig{locker: new(nopMutex), autoTouchMTime: true}
}

// nopMutex is the package's own zero-value-usable default Locker, distinct
// from NoopLocker only in that it exists so defaultConfig doesn't need a
// *sync.Mutex import at the option layer; WithLocker(new(sync.Mutex)) is the
// usual real-world choice for a shared archive.
type nopMutex struct{ NoopLocker }

// WithLocker overrides the Locker used to serialize access to the archive's
// stream. The default is a no-op locker, appropriate for archives confined
// to one goroutine; pass a *sync.Mutex (or any Locker) to share an Archive
// safely across goroutines.
func WithLocker(l Locker) Option {
	return func(c *archiveConfig) { c.locker = l }
}

// WithAutoTouchMTime controls whether a successful FileMut flush updates the
// entry's modify_time to the current time. Enabled by default.
func WithAutoTouchMTime(enabled bool) Option {
	return func(c *archiveConfig) { c.autoTouchMTime = enabled }
}

func applyOptions(opts []Option) archiveConfig {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
