package models

import (
	"bytes"
	"encoding/json"
)

type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindList
	KindPeople
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindPeople:
		return "people"
	default:
		return "null"
	}
}

// Value is the tagged union stored under a Record key.
type Value struct {
	Kind   Kind
	Text   string
	Items  []string
	People []PersonRecord

	// raw keeps the original JSON of non-string scalars so re-encoding is faithful.
	raw string
}

func Null() Value { return Value{Kind: KindNull} }

func String(s string) Value { return Value{Kind: KindScalar, Text: s} }

func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: KindList, Items: items}
}

func People(people ...PersonRecord) Value {
	if people == nil {
		people = []PersonRecord{}
	}
	return Value{Kind: KindPeople, People: people}
}

func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsList reports whether the value came from a JSON array.
func (v Value) IsList() bool { return v.Kind == KindList || v.Kind == KindPeople }

// Len is the element count of a list value and 0 otherwise.
func (v Value) Len() int {
	switch v.Kind {
	case KindList:
		return len(v.Items)
	case KindPeople:
		return len(v.People)
	}
	return 0
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindScalar:
		if v.raw != "" {
			return []byte(v.raw), nil
		}
		return json.Marshal(v.Text)
	case KindList:
		if v.Items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Items)
	case KindPeople:
		if v.People == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.People)
	default:
		return []byte("null"), nil
	}
}

type Field struct {
	Key   string
	Value Value
}

// Record is an ordered string-keyed mapping. Setting an existing key replaces the
// value in place, which mirrors how JSON objects with duplicate keys are read.
type Record struct {
	fields []Field
	index  map[string]int
}

func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

func (r *Record) Set(key string, v Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = v
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: v})
}

// Get returns the value under key and whether the key exists at all, null included.
func (r Record) Get(key string) (Value, bool) {
	i, ok := r.index[key]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Has reports whether key exists with a non-null value.
func (r Record) Has(key string) bool {
	v, ok := r.Get(key)
	return ok && !v.IsNull()
}

func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r Record) Keys() []string {
	out := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, f.Key)
	}
	return out
}

func (r Record) Len() int { return len(r.fields) }

func (r Record) IsZero() bool { return len(r.fields) == 0 }

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(b []byte) error {
	rec, err := ParseRecord(b)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}
