package xeno

import "sort"

// Env is the flat variable table of one execution.
type Env struct {
	values map[string]Value
}

func newEnv() *Env {
	return &Env{values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	val, ok := e.values[name]
	return val, ok
}

func (e *Env) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

func (e *Env) Len() int { return len(e.values) }

// Names returns the variable names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the table. Values are immutable, so a shallow copy is a full one.
func (e *Env) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Restore replaces the whole table with a previous snapshot.
func (e *Env) Restore(saved map[string]Value) {
	e.values = make(map[string]Value, len(saved))
	for k, v := range saved {
		e.values[k] = v
	}
}
