package snapshots

import (
	"maps"
	"path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// MemorySnapshot is a Snapshot of a record held by a MemorySource.
type MemorySnapshot struct {
	key  string
	path string
	data map[string]any
}

// NewMemorySnapshot returns a snapshot of data stored at collection/key.
func NewMemorySnapshot(collection, key string, data map[string]any) *MemorySnapshot {
	return &MemorySnapshot{
		key:  key,
		path: path.Join(collection, key),
		data: maps.Clone(data),
	}
}

// Key returns the record key.
func (s *MemorySnapshot) Key() string { return s.key }

// Ref returns the record location.
func (s *MemorySnapshot) Ref() Ref { return Ref{ID: s.key, Path: s.path} }

// Data returns a shallow copy of the record fields.
func (s *MemorySnapshot) Data() map[string]any { return maps.Clone(s.data) }

// DataTo decodes the record into v using its yaml struct tags.
func (s *MemorySnapshot) DataTo(v any) error {
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, v)
}

// MemoryOption configures a MemorySource.
type MemoryOption func(*MemorySource)

// WithOrder orders records with less instead of by key.
func WithOrder(less func(a, b *MemorySnapshot) bool) MemoryOption {
	return func(m *MemorySource) {
		m.less = less
	}
}

// MemorySource is an in-process ordered collection. Writes are delivered
// to listeners the way a realtime database child listener reports them:
// a content change that also changes position is a Moved followed by a
// Changed, and every write ends with Loaded.
//
// MemorySource is safe for concurrent use.
type MemorySource struct {
	collection string
	less       func(a, b *MemorySnapshot) bool

	mu     sync.Mutex
	docs   []*MemorySnapshot
	sinks  map[int]Sink
	nextID int
}

var _ Source = (*MemorySource)(nil)

// NewMemorySource returns an empty collection named collection.
func NewMemorySource(collection string, opts ...MemoryOption) *MemorySource {
	m := &MemorySource{
		collection: collection,
		less:       func(a, b *MemorySnapshot) bool { return a.key < b.key },
		sinks:      make(map[int]Sink),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the collection name.
func (m *MemorySource) Name() string {
	return m.collection
}

// Len returns the number of records.
func (m *MemorySource) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// Data returns a copy of the fields stored at key.
func (m *MemorySource) Data(key string) (map[string]any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(key)
	if idx < 0 {
		return nil, false
	}
	data := m.docs[idx].Data()
	if data == nil {
		data = make(map[string]any)
	}
	return data, true
}

// Listeners returns the number of active listeners.
func (m *MemorySource) Listeners() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sinks)
}

// Listen replays the current records to sink and then streams writes.
func (m *MemorySource) Listen(sink Sink) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.sinks[id] = sink
	for i, doc := range m.docs {
		sink.Added(doc, i)
	}
	sink.Loaded()

	return func() {
		m.mu.Lock()
		delete(m.sinks, id)
		m.mu.Unlock()
	}
}

// Put creates or replaces the record at key.
func (m *MemorySource) Put(key string, data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := NewMemorySnapshot(m.collection, key, data)
	old := m.indexOf(key)
	if old >= 0 {
		m.docs = append(m.docs[:old], m.docs[old+1:]...)
	}
	idx := m.insertionPoint(snap)
	m.docs = append(m.docs, nil)
	copy(m.docs[idx+1:], m.docs[idx:])
	m.docs[idx] = snap

	for _, sink := range m.orderedSinks() {
		switch {
		case old < 0:
			sink.Added(snap, idx)
		case old == idx:
			sink.Changed(snap, idx)
		default:
			sink.Moved(snap, old, idx)
			sink.Changed(snap, idx)
		}
		sink.Loaded()
	}
}

// Delete removes the record at key. It reports whether the key existed.
func (m *MemorySource) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(key)
	if idx < 0 {
		return false
	}
	m.docs = append(m.docs[:idx], m.docs[idx+1:]...)
	for _, sink := range m.orderedSinks() {
		sink.Removed(idx)
		sink.Loaded()
	}
	return true
}

// Fail reports err to every listener, the way a server-side cancellation
// (revoked permission, deleted collection) would.
func (m *MemorySource) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sink := range m.orderedSinks() {
		sink.Failed(err)
	}
}

func (m *MemorySource) indexOf(key string) int {
	for i, doc := range m.docs {
		if doc.key == key {
			return i
		}
	}
	return -1
}

func (m *MemorySource) insertionPoint(snap *MemorySnapshot) int {
	return sort.Search(len(m.docs), func(i int) bool {
		return m.less(snap, m.docs[i])
	})
}

func (m *MemorySource) orderedSinks() []Sink {
	ids := make([]int, 0, len(m.sinks))
	for id := range m.sinks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Sink, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.sinks[id])
	}
	return out
}
