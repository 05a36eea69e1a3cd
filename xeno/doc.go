// Package xeno implements the Xenocode interpreter. A program is a list of
// lines, each holding at most one statement:
//   - Output via `§transmit expr` and input via `x ← §receive`.
//   - Assignment `x ← expr`, including indexed targets such as `m["k"] ← 1`
//     and the constructors `§create_map`, `§create_array` and `§null`.
//   - Loops `§iterate x §in expr ... §end_iterate` over sequences, mapping
//     keys and string characters.
//   - Conditionals `§if expr ... [§else ...] §end_if`.
//   - Procedures `§function name(a, b) ... §end_function`, invoked with
//     `§call name(args...)`.
//   - Operators ⊕ ⊖ ⊛ ⊗ ⊘ ≈ and the ¬ prefix.
//
// Lines starting with `#` are ignored, and so are lines no rule recognises.
// Each execution is bounded by a step quota, a recursion limit, a memory
// quota and its context.
package xeno
