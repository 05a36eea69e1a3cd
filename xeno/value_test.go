package xeno

import (
	"math"
	"reflect"
	"testing"
)

func TestValueTruthiness(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want bool
	}{
		{"null", NewNull(), false},
		{"zero value", Value{}, false},
		{"true", NewBool(true), true},
		{"false", NewBool(false), false},
		{"zero int", NewInt(0), false},
		{"int", NewInt(-1), true},
		{"zero float", NewFloat(0), false},
		{"float", NewFloat(0.1), true},
		{"empty string", NewString(""), false},
		{"string", NewString("0"), true},
		{"empty sequence", NewSequence(nil), false},
		{"sequence", NewSequence([]Value{NewNull()}), true},
		{"empty mapping", NewMapping(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.Truthy(); got != tt.want {
				t.Fatalf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueEquality(t *testing.T) {
	left := newMapping(2)
	_ = left.set(NewString("a"), NewInt(1))
	_ = left.set(NewString("b"), NewInt(2))
	right := newMapping(2)
	_ = right.set(NewString("b"), NewInt(2))
	_ = right.set(NewString("a"), NewFloat(1))

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints", NewInt(3), NewInt(3), true},
		{"int and float", NewInt(3), NewFloat(3), true},
		{"different ints", NewInt(3), NewInt(4), false},
		{"string and int", NewString("3"), NewInt(3), false},
		{"nulls", NewNull(), NewNull(), true},
		{"null and false", NewNull(), NewBool(false), false},
		{"sequences", NewSequence([]Value{NewInt(1), NewString("x")}), NewSequence([]Value{NewFloat(1), NewString("x")}), true},
		{"sequence lengths", NewSequence([]Value{NewInt(1)}), NewSequence(nil), false},
		{"mappings ignore order", NewMapping(left), NewMapping(right), true},
		{"nan", NewFloat(math.NaN()), NewFloat(math.NaN()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Fatalf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueTextForms(t *testing.T) {
	m := newMapping(2)
	_ = m.set(NewString("k"), NewSequence([]Value{NewInt(1), NewNull()}))
	_ = m.set(NewInt(2), NewBool(true))

	tests := []struct {
		name    string
		val     Value
		str     string
		inspect string
	}{
		{"null", NewNull(), "null", "null"},
		{"bool", NewBool(false), "false", "false"},
		{"int", NewInt(-4), "-4", "-4"},
		{"whole float", NewFloat(3), "3.0", "3.0"},
		{"float", NewFloat(0.25), "0.25", "0.25"},
		{"infinity", NewFloat(math.Inf(-1)), "-inf", "-inf"},
		{"string", NewString("a b"), "a b", `"a b"`},
		{"sequence", NewSequence([]Value{NewString("x"), NewInt(1)}), `["x", 1]`, `["x", 1]`},
		{"mapping", NewMapping(m), `{"k": [1, null], 2: true}`, `{"k": [1, null], 2: true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.String(); got != tt.str {
				t.Fatalf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.val.Inspect(); got != tt.inspect {
				t.Fatalf("Inspect() = %q, want %q", got, tt.inspect)
			}
		})
	}
}

func TestMappingKeys(t *testing.T) {
	m := newMapping(0)
	if err := m.set(NewInt(1), NewString("one")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.set(NewFloat(1), NewString("uno")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("integral float should share the integer key, got %d entries", m.Len())
	}
	if val, ok := m.Get(NewInt(1)); !ok || val.String() != "uno" {
		t.Fatalf("unexpected lookup result %v %v", val, ok)
	}
	if _, ok := m.Get(NewString("1")); ok {
		t.Fatalf("string key must not match integer key")
	}
	if err := m.set(NewSequence(nil), NewNull()); err == nil {
		t.Fatalf("expected unhashable key error")
	}
	if _, ok := m.Get(NewMapping(nil)); ok {
		t.Fatalf("unhashable lookups report absence")
	}
}

func TestMappingWithLeavesOriginalUntouched(t *testing.T) {
	original := newMapping(1)
	_ = original.set(NewString("a"), NewInt(1))

	updated, err := original.with(NewString("b"), NewInt(2))
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if original.Len() != 1 || updated.Len() != 2 {
		t.Fatalf("unexpected lengths %d and %d", original.Len(), updated.Len())
	}
	keys := updated.Keys()
	if keys[0].String() != "a" || keys[1].String() != "b" {
		t.Fatalf("unexpected key order %v", keys)
	}
}

func TestNativeRoundTrip(t *testing.T) {
	raw := map[string]any{
		"name":  "probe",
		"count": 3,
		"tags":  []any{"a", 1.5, true, nil},
	}
	val, err := FromNative(raw)
	if err != nil {
		t.Fatalf("FromNative: %v", err)
	}
	if got := val.Inspect(); got != `{"count": 3, "name": "probe", "tags": ["a", 1.5, true, null]}` {
		t.Fatalf("unexpected value %s", got)
	}

	native := val.Native().(map[any]any)
	want := map[any]any{
		"count": int64(3),
		"name":  "probe",
		"tags":  []any{"a", 1.5, true, nil},
	}
	if !reflect.DeepEqual(native, want) {
		t.Fatalf("Native() = %#v, want %#v", native, want)
	}

	if _, err := FromNative(struct{}{}); err == nil {
		t.Fatalf("expected unsupported type error")
	}
}

func TestEnvSnapshotRestore(t *testing.T) {
	env := newEnv()
	env.Define("b", NewInt(2))
	env.Define("a", NewInt(1))
	saved := env.Snapshot()

	env.Define("a", NewInt(10))
	env.Define("c", NewInt(3))
	env.Restore(saved)

	if got := env.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected names %v", got)
	}
	if val, _ := env.Get("a"); val.Int() != 1 {
		t.Fatalf("expected restored a=1, got %s", val.Inspect())
	}
	saved["b"] = NewInt(99)
	if val, _ := env.Get("b"); val.Int() != 2 {
		t.Fatalf("restore must copy the snapshot")
	}
}
