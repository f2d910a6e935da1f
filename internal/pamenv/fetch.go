package pamenv

import (
	"io"
	"log/slog"
)

// Fetcher reads environment snapshots from sessions.
// A Fetcher holds no per-call state and may be shared between goroutines;
// concurrent use of a single Session is governed by the native library.
type Fetcher struct {
	releaser Releaser
	logger   *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher that releases native lists with releaser.
// A nil releaser selects WalkReleaser.
func NewFetcher(releaser Releaser, opts ...Option) *Fetcher {
	if releaser == nil {
		releaser = WalkReleaser{}
	}
	f := &Fetcher{
		releaser: releaser,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch takes one snapshot of the session's environment. It reports false
// when the library has no environment list for the session. The native list
// is released before Fetch returns on every path. Malformed entries are
// skipped silently.
func (f *Fetcher) Fetch(s Session) (*EnvList, bool) {
	native := s.EnvList()
	if native == nil {
		f.logger.Debug("No environment list available")
		return nil, false
	}
	defer f.releaser.Release(native)

	list := &EnvList{}
	c := native.Cursor()
	for c.Next() {
		list.add(c.Bytes())
	}

	f.logger.Debug("Fetched environment list", "entries", list.Len())
	return list, true
}

// Fetch takes a snapshot using WalkReleaser and no logging.
func Fetch(s Session) (*EnvList, bool) {
	return NewFetcher(nil).Fetch(s)
}
