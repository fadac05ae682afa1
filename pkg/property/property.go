// Package property implements generic columnar attribute storage for mesh
// elements. A Registry owns a set of typed columns that grow and shrink in
// lockstep with the element collection they describe; columns are addressed
// by a small integer ID that stays valid across removals of other columns.
package property

// ID identifies a column slot within a Registry.
type ID int

// InvalidID marks the absence of a column.
const InvalidID ID = -1

// column is the type-erased view the Registry holds on a typed Storage.
type column interface {
	name() string
	length() int
	resize(n int)
	move(from, to int)
	clone() column
}

// Storage is a named dense array with one entry of type T per element.
// It is created through GetOrAdd and stays parallel to its Registry.
type Storage[T any] struct {
	nm   string
	def  T
	data []T
}

// Name returns the column name the storage was registered under.
func (s *Storage[T]) Name() string { return s.nm }

// Len returns the number of elements.
func (s *Storage[T]) Len() int { return len(s.data) }

// At returns the value stored for element i.
func (s *Storage[T]) At(i int) T { return s.data[i] }

// Set stores v for element i.
func (s *Storage[T]) Set(i int, v T) { s.data[i] = v }

// Default returns the value new elements are initialized with.
func (s *Storage[T]) Default() T { return s.def }

// Fill sets every element to v.
func (s *Storage[T]) Fill(v T) {
	for i := range s.data {
		s.data[i] = v
	}
}

func (s *Storage[T]) name() string { return s.nm }
func (s *Storage[T]) length() int  { return len(s.data) }

func (s *Storage[T]) resize(n int) {
	for len(s.data) < n {
		s.data = append(s.data, s.def)
	}
	s.data = s.data[:n]
}

func (s *Storage[T]) move(from, to int) {
	s.data[to] = s.data[from]
}

func (s *Storage[T]) clone() column {
	cp := &Storage[T]{nm: s.nm, def: s.def, data: make([]T, len(s.data))}
	copy(cp.data, s.data)
	return cp
}

// Registry is a collection of columns indexed by ID. Removing a column
// leaves a vacant slot so the IDs of the remaining columns do not shift;
// vacant slots are reused by later allocations.
type Registry struct {
	cols []column
	size int
}

// GetOrAdd returns the storage registered under name with element type T,
// allocating it if absent. A new storage is pre-filled with def for every
// existing element. Methods cannot be generic, hence the package-level
// function.
func GetOrAdd[T any](r *Registry, name string, def T) *Storage[T] {
	for _, c := range r.cols {
		if s, ok := c.(*Storage[T]); ok && s.nm == name {
			return s
		}
	}
	s := &Storage[T]{nm: name, def: def, data: make([]T, r.size)}
	for i := range s.data {
		s.data[i] = def
	}
	for i, c := range r.cols {
		if c == nil {
			r.cols[i] = s
			return s
		}
	}
	r.cols = append(r.cols, s)
	return s
}

// IDOf returns the ID of the storage registered under name with element
// type T, or InvalidID if no such storage exists.
func IDOf[T any](r *Registry, name string) ID {
	for i, c := range r.cols {
		if s, ok := c.(*Storage[T]); ok && s.nm == name {
			return ID(i)
		}
	}
	return InvalidID
}

// Remove frees the column at id, leaving a vacant slot in its place.
// It returns false if id is out of range or already vacant.
func (r *Registry) Remove(id ID) bool {
	if id < 0 || int(id) >= len(r.cols) || r.cols[id] == nil {
		return false
	}
	r.cols[id] = nil
	return true
}

// Len returns the number of elements every column holds.
func (r *Registry) Len() int { return r.size }

// NumColumns returns the number of live columns.
func (r *Registry) NumColumns() int {
	n := 0
	for _, c := range r.cols {
		if c != nil {
			n++
		}
	}
	return n
}

// Resize grows or shrinks every live column to n elements. Grown columns
// are padded with their default value.
func (r *Registry) Resize(n int) {
	r.size = n
	for _, c := range r.cols {
		if c != nil {
			c.resize(n)
		}
	}
}

// Clone deep-copies every live column. Vacant slots are preserved at the
// same IDs so registries sharing an ID numbering stay consistent.
func (r *Registry) Clone() Registry {
	cp := Registry{cols: make([]column, len(r.cols)), size: r.size}
	for i, c := range r.cols {
		if c != nil {
			cp.cols[i] = c.clone()
		}
	}
	return cp
}

// Compact moves surviving elements to their new indices and truncates every
// column to n elements. remap[old] gives the new index of element old, or a
// negative value if it does not survive. New indices must be in the same
// relative order as the old ones.
func (r *Registry) Compact(remap []int, n int) {
	for old, idx := range remap {
		if idx >= 0 && idx != old {
			for _, c := range r.cols {
				if c != nil {
					c.move(old, idx)
				}
			}
		}
	}
	r.Resize(n)
}
