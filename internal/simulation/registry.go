package simulation

// bucket is an insertion-ordered set of entities of one kind. Deletion moves
// the last element into the freed slot, so order is not stable across removals.
type bucket struct {
	items []Entity
	index map[Entity]int
}

func newBucket() *bucket {
	return &bucket{index: make(map[Entity]int)}
}

func (b *bucket) has(e Entity) bool {
	_, ok := b.index[e]
	return ok
}

func (b *bucket) add(e Entity) {
	if b.has(e) {
		return
	}
	b.index[e] = len(b.items)
	b.items = append(b.items, e)
}

func (b *bucket) delete(e Entity) bool {
	i, ok := b.index[e]
	if !ok {
		return false
	}
	last := len(b.items) - 1
	if i != last {
		moved := b.items[last]
		b.items[i] = moved
		b.index[moved] = i
	}
	b.items[last] = nil
	b.items = b.items[:last]
	delete(b.index, e)
	return true
}

func (b *bucket) clear() {
	clear(b.items)
	b.items = b.items[:0]
	clear(b.index)
}

// Registry holds the live entities of a simulation partitioned by Kind. Every
// entity is stored in exactly the bucket of its own kind.
//
// Registry is not safe for concurrent use; the owning Simulation serialises
// access.
type Registry struct {
	buckets map[Kind]*bucket
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{buckets: make(map[Kind]*bucket)}
}

func (r *Registry) bucket(k Kind) *bucket {
	b, ok := r.buckets[k]
	if !ok {
		b = newBucket()
		r.buckets[k] = b
	}
	return b
}

// Get returns a snapshot of the entities of kind k. The bucket is created on
// first access, so the call is idempotent and never fails.
func (r *Registry) Get(k Kind) []Entity {
	b := r.bucket(k)
	out := make([]Entity, len(b.items))
	copy(out, b.items)
	return out
}

// Count returns the number of live entities of kind k.
func (r *Registry) Count(k Kind) int {
	if b, ok := r.buckets[k]; ok {
		return len(b.items)
	}
	return 0
}

// Has reports whether e is registered.
func (r *Registry) Has(e Entity) bool {
	if e == nil {
		return false
	}
	return r.bucket(e.Kind()).has(e)
}

// Add inserts e into the bucket for its kind. Adding an entity twice is a no-op.
func (r *Registry) Add(e Entity) {
	if e == nil {
		return
	}
	r.bucket(e.Kind()).add(e)
}

// Delete removes e and reports whether it was present.
func (r *Registry) Delete(e Entity) bool {
	if e == nil {
		return false
	}
	return r.bucket(e.Kind()).delete(e)
}

// Clear removes every entity.
func (r *Registry) Clear() {
	for _, b := range r.buckets {
		b.clear()
	}
}

// Len returns the total number of entities across all kinds.
func (r *Registry) Len() int {
	n := 0
	for _, b := range r.buckets {
		n += len(b.items)
	}
	return n
}

// Each calls fn with every (kind, entity) pair until fn returns false. Kinds
// are visited in declaration order. fn must not add or remove entities.
func (r *Registry) Each(fn func(Kind, Entity) bool) {
	for k := Kind(0); k < kindCount; k++ {
		b, ok := r.buckets[k]
		if !ok {
			continue
		}
		for _, e := range b.items {
			if !fn(k, e) {
				return
			}
		}
	}
}

// All returns a snapshot of every registered entity regardless of kind.
func (r *Registry) All() []Entity {
	out := make([]Entity, 0, r.Len())
	r.Each(func(_ Kind, e Entity) bool {
		out = append(out, e)
		return true
	})
	return out
}

// each visits the entities of one kind without copying.
func (r *Registry) each(k Kind, fn func(Entity)) {
	b, ok := r.buckets[k]
	if !ok {
		return
	}
	for _, e := range b.items {
		fn(e)
	}
}
