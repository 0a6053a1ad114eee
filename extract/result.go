package extract

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"

	"github.com/elliotchance/orderedmap/v3"
)

// Declarations is a set of converted style properties in the order they were
// first set.
type Declarations struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewDeclarations creates an empty declaration set.
func NewDeclarations() *Declarations {
	return &Declarations{m: orderedmap.NewOrderedMap[string, any]()}
}

// Set assigns value to property. Existing property keeps its position.
func (d *Declarations) Set(property string, value any) {
	d.m.Set(property, value)
}

// Get returns value of property.
func (d *Declarations) Get(property string) (any, bool) {
	return d.m.Get(property)
}

// Len returns number of properties in the set.
func (d *Declarations) Len() int {
	return d.m.Len()
}

// Keys returns property names in order.
func (d *Declarations) Keys() []string {
	return collectKeys(d.m.AllFromFront())
}

// All iterates over properties in order.
func (d *Declarations) All() iter.Seq2[string, any] {
	return d.m.AllFromFront()
}

// Merge overlays other onto d, later values win.
func (d *Declarations) Merge(other *Declarations) {
	for k, v := range other.m.AllFromFront() {
		d.m.Set(k, v)
	}
}

// Clone returns an independent copy of the set.
func (d *Declarations) Clone() *Declarations {
	c := NewDeclarations()
	c.Merge(d)
	return c
}

func (d *Declarations) MarshalJSON() ([]byte, error) {
	return marshalOrdered(d.m.AllFromFront())
}

// StyleMap maps canonical selector keys (and their indexed conditional
// variants "key.N") to declaration sets in insertion order.
type StyleMap struct {
	m *orderedmap.OrderedMap[string, *Declarations]
}

func newStyleMap() *StyleMap {
	return &StyleMap{m: orderedmap.NewOrderedMap[string, *Declarations]()}
}

// Get returns declaration set stored under key.
func (s *StyleMap) Get(key string) (*Declarations, bool) {
	return s.m.Get(key)
}

// Len returns number of entries.
func (s *StyleMap) Len() int {
	return s.m.Len()
}

// Keys returns entry keys in insertion order.
func (s *StyleMap) Keys() []string {
	return collectKeys(s.m.AllFromFront())
}

// All iterates over entries in insertion order.
func (s *StyleMap) All() iter.Seq2[string, *Declarations] {
	return s.m.AllFromFront()
}

func (s *StyleMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(s.m.AllFromFront())
}

// MediaMap maps canonical selector keys to the composed conditions of their
// conditional variants. Condition at index N belongs to StyleMap entry "key.N".
type MediaMap struct {
	m *orderedmap.OrderedMap[string, []string]
}

func newMediaMap() *MediaMap {
	return &MediaMap{m: orderedmap.NewOrderedMap[string, []string]()}
}

// Get returns conditions recorded for key. Returned slice must not be modified.
func (mm *MediaMap) Get(key string) ([]string, bool) {
	return mm.m.Get(key)
}

// Len returns number of selector keys.
func (mm *MediaMap) Len() int {
	return mm.m.Len()
}

// Keys returns selector keys in insertion order.
func (mm *MediaMap) Keys() []string {
	return collectKeys(mm.m.AllFromFront())
}

// All iterates over entries in insertion order.
func (mm *MediaMap) All() iter.Seq2[string, []string] {
	return mm.m.AllFromFront()
}

// push appends condition for key and returns its index.
func (mm *MediaMap) push(key, condition string) int {
	conds, _ := mm.m.Get(key)
	mm.m.Set(key, append(slices.Clip(conds), condition))
	return len(conds)
}

func (mm *MediaMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(mm.m.AllFromFront())
}

// Result holds everything collected by a single walk.
type Result struct {
	Styles *StyleMap
	Media  *MediaMap
	Errors []error // one per declaration which could not be converted, in walk order
}

func newResult() *Result {
	return &Result{Styles: newStyleMap(), Media: newMediaMap()}
}

func collectKeys[V any](all iter.Seq2[string, V]) []string {
	var keys []string
	for k := range all {
		keys = append(keys, k)
	}
	return keys
}

// marshalOrdered produces compact JSON object preserving iteration order.
// HTML characters are not escaped, selectors often contain '>' and '&'.
func marshalOrdered[V any](all iter.Seq2[string, V]) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	encode := func(v any) error {
		if err := enc.Encode(v); err != nil {
			return err
		}
		// Encode always terminates value with newline
		buf.Truncate(buf.Len() - 1)
		return nil
	}

	buf.WriteByte('{')
	first := true
	for k, v := range all {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := encode(k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encode(v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
