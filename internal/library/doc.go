// Package library implements the in-memory vocabulary library: flashcards,
// wordlists, folders, and the join rows that link them.
//
// A Library is an explicit value owned by the caller; there is no global
// instance. Every operation is synchronous and atomic with respect to every
// other operation on the same Library. Mutations that reference a missing
// entity, or that would insert a duplicate membership, are silent no-ops.
// Capacity caps from the domain package are enforced on insert and surface
// as domain.CapacityError; malformed input surfaces as
// domain.ValidationError.
//
// After every state-changing mutation the Library emits an
// events.LibraryEvent carrying the new Stats. Events are dispatched after
// the lock is released, so handlers may read from the Library.
package library
