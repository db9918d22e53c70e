package xpjson

import "sort"

// entry is one key/value pair of an Object.
type entry struct {
	key string
	val *Value
}

// Object is a mapping from string key to Value with unique keys, kept in
// sorted-key order at all times.
//
// This mirrors xpjson.hpp's ObjectT, which is a std::map<string, Value> and
// therefore sorted by key (xpjson.hpp:196). Go's JSON libraries don't all
// agree on iteration order for their map-backed objects; sorted-by-key is
// the choice made here, kept on top of a slice-of-pairs representation so
// Get and Set stay a single binary search rather than a separate tree
// structure.
type Object struct {
	entries []entry
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{}
}

// Len returns the number of keys in o.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

func (o *Object) search(key string) (int, bool) {
	i := sort.Search(len(o.entries), func(i int) bool {
		return o.entries[i].key >= key
	})
	return i, i < len(o.entries) && o.entries[i].key == key
}

// Get returns the Value stored under key and true, or (nil, false) if key is
// not present.
func (o *Object) Get(key string) (*Value, bool) {
	if o == nil {
		return nil, false
	}
	i, found := o.search(key)
	if !found {
		return nil, false
	}
	return o.entries[i].val, true
}

// Set stores v under key, overwriting any existing value for that key
// (last-wins, as required by the duplicate-key parse rule) and keeping the
// entries in sorted-key order.
func (o *Object) Set(key string, v *Value) {
	i, found := o.search(key)
	if found {
		o.entries[i].val = v
		return
	}
	o.entries = append(o.entries, entry{})
	copy(o.entries[i+1:], o.entries[i:])
	o.entries[i] = entry{key: key, val: v}
}

// Delete removes key from o, if present.
func (o *Object) Delete(key string) {
	i, found := o.search(key)
	if !found {
		return
	}
	o.entries = append(o.entries[:i], o.entries[i+1:]...)
}

// Keys returns the object's keys in sorted order. The returned slice must
// not be mutated.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.key
	}
	return keys
}

// Range calls fn for every (key, value) pair in sorted-key order, stopping
// early if fn returns false.
func (o *Object) Range(fn func(key string, v *Value) bool) {
	if o == nil {
		return
	}
	for _, e := range o.entries {
		if !fn(e.key, e.val) {
			return
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	out := &Object{entries: make([]entry, len(o.entries))}
	for i, e := range o.entries {
		out.entries[i] = entry{key: e.key, val: e.val.Clone()}
	}
	return out
}
