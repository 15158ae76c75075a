// Package mocks provides hand-written test doubles for the store, auth, and
// mail contracts. The account store mock preserves the atomicity semantics
// of the real unique index so concurrency tests are meaningful.
package mocks
