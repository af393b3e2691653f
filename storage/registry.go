package storage

import (
	"encoding/binary"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/foedus-go/pagecore/collab"
	"github.com/foedus-go/pagecore/fault"
	"github.com/foedus-go/pagecore/page"
)

// Handle is a live storage: its metadata plus the root page pointer a
// client resolves through the (external) buffer pool to start a
// traversal. The registry owns Handle values; callers borrow them.
type Handle struct {
	Metadata Metadata
	Root     page.PagePointer

	// RootHeader is a point-in-time snapshot of the header the root page
	// carried immediately after construction, kept for diagnostics and
	// tests; the live page itself is owned by the (external) buffer
	// pool and is not reachable from here. page.HeaderState rather than
	// page.Header: the latter embeds a live atomic.Uint64 that must
	// never be copied by value.
	RootHeader page.HeaderState
}

// Factory validates a proposed Metadata and, if it is acceptable,
// constructs the storage's root page and returns a live Handle.
// Factories are registered per Type at engine init, mirroring how a
// real factory dispatch table is built up before traffic starts.
type Factory interface {
	// Create validates metadata and builds the root page for a new
	// storage. alloc supplies the zeroed backing memory, over which the
	// factory runs a page.VolatileInitializer to bring the root page to
	// life.
	Create(metadata Metadata, alloc collab.PageAllocator) (Handle, error)
}

// Metrics instruments registry traffic: creates, lookups, and rejected
// Create calls labelled by fault code. Nil-safe like page.Metrics.
type Metrics struct {
	creates  prometheus.Counter
	lookups  prometheus.Counter
	rejected *prometheus.CounterVec
}

// NewMetrics builds a Metrics and registers its collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		creates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagecore_storage_creates_total",
			Help: "Number of storages successfully created.",
		}),
		lookups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pagecore_storage_lookups_total",
			Help: "Number of Registry.Lookup calls.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pagecore_storage_create_rejections_total",
			Help: "Number of Registry.Create calls rejected, by fault code.",
		}, []string{"code"}),
	}
	reg.MustRegister(m.creates, m.lookups, m.rejected)
	return m
}

func (m *Metrics) created() {
	if m == nil {
		return
	}
	m.creates.Inc()
}

func (m *Metrics) lookedUp() {
	if m == nil {
		return
	}
	m.lookups.Inc()
}

func (m *Metrics) rejectedAs(code fault.Code) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(code.String()).Inc()
}

// Registry maps StorageId to metadata and live handle, plus a factory
// table keyed by storage type. A sync.RWMutex guards the maps: readers
// (Lookup, Each) take RLock, the rare writer (Create) takes Lock, which
// is the read-preferring trade a registry with "creation is rare,
// lookups are constant" traffic wants.
type Registry struct {
	mu        sync.RWMutex
	factories map[Type]Factory
	handles   map[ID]Handle
	names     map[string]struct{}

	log     collab.LogSink
	metrics *Metrics
	logger  *zap.Logger
}

// NewRegistry builds an empty Registry. log is the thread-local log
// buffer Create writes a create-log entry to; metrics and logger are
// optional (nil disables instrumentation/logging, matching page.Metrics
// and the zap.NewNop() default elsewhere in this module).
func NewRegistry(log collab.LogSink, metrics *Metrics, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		factories: make(map[Type]Factory),
		handles:   make(map[ID]Handle),
		names:     make(map[string]struct{}),
		log:       log,
		metrics:   metrics,
		logger:    logger,
	}
}

// RegisterFactory installs typ's factory. Intended to run at engine
// init, before any Create call for that type; it is not safe to call
// concurrently with Create for the same type (engine startup is
// single-threaded in this core's model).
func (r *Registry) RegisterFactory(typ Type, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typ] = f
}

// Create validates and builds a new storage from metadata, dispatching
// to the factory registered for its type. On success it writes a
// create-log entry to the injected log sink before returning the
// Handle, as the engine-level log buffer collaborator requires.
func (r *Registry) Create(metadata Metadata, alloc collab.PageAllocator) (Handle, error) {
	if err := metadata.common.validate(); err != nil {
		r.metrics.rejectedAs(fault.StorageInvalidOption)
		return Handle{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	factory, ok := r.factories[metadata.StorageTypeTag()]
	if !ok {
		r.metrics.rejectedAs(fault.StorageWrongMetadataType)
		return Handle{}, fault.Newf(fault.StorageWrongMetadataType, "storage: no factory registered for type %v", metadata.StorageTypeTag())
	}
	if _, exists := r.handles[metadata.StorageID()]; exists {
		r.metrics.rejectedAs(fault.StorageDuplicateID)
		return Handle{}, fault.Newf(fault.StorageDuplicateID, "storage: id %d already registered", metadata.StorageID())
	}
	if _, exists := r.names[metadata.StorageName()]; exists {
		r.metrics.rejectedAs(fault.StorageDuplicateName)
		return Handle{}, fault.Newf(fault.StorageDuplicateName, "storage: name %q already registered", metadata.StorageName())
	}

	handle, err := factory.Create(metadata, alloc)
	if err != nil {
		if fe, ok := err.(*fault.Error); ok {
			r.metrics.rejectedAs(fe.Code())
		} else {
			r.metrics.rejectedAs(fault.Unknown)
		}
		r.logger.Warn("storage create rejected by factory",
			zap.Uint32("id", uint32(metadata.StorageID())),
			zap.String("name", metadata.StorageName()),
			zap.Error(err))
		return Handle{}, err
	}

	if r.log != nil {
		entry, logErr := r.log.ReserveNewLog(createLogEntrySize)
		if logErr != nil {
			return Handle{}, fault.Wrap(logErr, "storage: reserving create-log entry")
		}
		encodeCreateLogEntry(entry, metadata)
	}

	r.handles[metadata.StorageID()] = handle
	r.names[metadata.StorageName()] = struct{}{}
	r.metrics.created()
	r.logger.Info("storage created",
		zap.Uint32("id", uint32(metadata.StorageID())),
		zap.String("name", metadata.StorageName()),
		zap.String("type", metadata.StorageTypeTag().String()))
	return handle, nil
}

// Lookup returns the live Handle for id, if any.
func (r *Registry) Lookup(id ID) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.metrics.lookedUp()
	h, ok := r.handles[id]
	return h, ok
}

// Each calls visit once per live storage, in unspecified order. visit
// must not call back into the Registry; Each holds the read lock for
// its whole duration.
func (r *Registry) Each(visit func(Handle)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.handles {
		visit(h)
	}
}

// SnapshotMetadata returns the Metadata of every live storage, sorted
// by id, ready to hand to SaveDocument.
func (r *Registry) SnapshotMetadata() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Metadata, 0, len(r.handles))
	for _, h := range r.handles {
		out = append(out, h.Metadata.Clone())
	}
	sortMetadataByID(out)
	return out
}

func sortMetadataByID(m []Metadata) {
	for i := 1; i < len(m); i++ {
		for j := i; j > 0 && m[j].StorageID() < m[j-1].StorageID(); j-- {
			m[j], m[j-1] = m[j-1], m[j]
		}
	}
}

// createLogEntrySize bounds the wire-format create-log entry: id(4) +
// type(1) + name(maxNameLength, zero-padded) + root pointer(8).
const createLogEntrySize = 4 + 1 + maxNameLength + 8

func encodeCreateLogEntry(buf []byte, m Metadata) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(m.StorageID()))
	buf[4] = byte(m.StorageTypeTag())
	nameBytes := buf[5 : 5+maxNameLength]
	for i := range nameBytes {
		nameBytes[i] = 0
	}
	copy(nameBytes, m.StorageName())
	binary.LittleEndian.PutUint64(buf[5+maxNameLength:5+maxNameLength+8], uint64(m.RootSnapshotPagePointer()))
}
