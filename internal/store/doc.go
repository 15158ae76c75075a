// Package store defines the persistence contracts consumed by the account
// lifecycle service. Implementations live under internal/platform.
package store
