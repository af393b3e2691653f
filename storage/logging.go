package storage

import (
	"go.uber.org/zap"

	"github.com/foedus-go/pagecore/collab"
)

// Options gathers the engine-init knobs a host process supplies when
// bringing a Registry online, as constructor arguments rather than a
// parsed config file.
type Options struct {
	// Logger receives Registry lifecycle events. Defaults to
	// zap.NewNop() when left nil, so a caller that doesn't care about
	// logging pays nothing for it.
	Logger *zap.Logger

	// Metrics receives Registry traffic counters. Defaults to nil,
	// which disables instrumentation entirely.
	Metrics *Metrics
}

// NewEngineRegistry builds a Registry wired with the standard set of
// factories (Array, Sequential, Hash) this module ships, ready for an
// engine to Create storages against. log is the thread-local log
// buffer collaborator Create writes create-log entries to.
func NewEngineRegistry(log collab.LogSink, opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := NewRegistry(log, opts.Metrics, logger)
	r.RegisterFactory(TypeArray, ArrayFactory{})
	r.RegisterFactory(TypeSequential, SequentialFactory{})
	r.RegisterFactory(TypeHashRoot, HashFactory{})
	return r
}
