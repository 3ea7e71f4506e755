package reports

import (
	"bytes"
	"encoding/json"
)

// Ordered is a JSON object that keeps insertion order, which chart
// consumers rely on for month and country keys.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{values: make(map[string]V)}
}

func (o *Ordered[V]) Set(key string, v V) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Ordered[V]) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Ordered[V]) Keys() []string { return append([]string(nil), o.keys...) }
func (o *Ordered[V]) Len() int       { return len(o.keys) }

func (o *Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
