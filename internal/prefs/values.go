package prefs

import (
	"fmt"
	"sort"
)

// Kind tags the type of a stored preference value.
type Kind int

const (
	KindString Kind = iota + 1
	KindBool
	KindStringSet
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindStringSet:
		return "string_set"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single preference value. Exactly one payload field is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
	Set  []string
}

func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// SetValue returns a string-set value with duplicates removed and members sorted.
func SetValue(members []string) Value {
	seen := make(map[string]struct{}, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return Value{Kind: KindStringSet, Set: out}
}

// Change is one write in an atomic batch produced inside Backend.Update.
type Change struct {
	Key    string
	Value  Value
	Delete bool
}

func Put(key string, v Value) Change {
	return Change{Key: key, Value: v}
}

func Remove(key string) Change {
	return Change{Key: key, Delete: true}
}

// UpdateFunc computes a batch of changes from the values currently stored.
// It may modify current freely; it is a private copy.
type UpdateFunc func(current map[string]Value) []Change

// Backend persists preference values. Update reads the stored values, runs
// fn on them and writes the returned batch, all while holding the backend's
// write lock, so another process cannot interleave between read and write.
// The batch is atomic and durable: when Update returns nil every change
// survives a restart. Update returns the values as stored afterwards.
type Backend interface {
	Load() (map[string]Value, error)
	Update(fn UpdateFunc) (map[string]Value, error)
	Close() error
}

// Apply writes a fixed batch through b.
func Apply(b Backend, changes []Change) error {
	_, err := b.Update(func(map[string]Value) []Change { return changes })
	return err
}

func applyChanges(values map[string]Value, changes []Change) {
	for _, c := range changes {
		if c.Delete {
			delete(values, c.Key)
			continue
		}
		values[c.Key] = c.Value
	}
}

func cloneValues(values map[string]Value) map[string]Value {
	out := make(map[string]Value, len(values))
	for k, v := range values {
		if v.Kind == KindStringSet {
			v.Set = append([]string(nil), v.Set...)
		}
		out[k] = v
	}
	return out
}
