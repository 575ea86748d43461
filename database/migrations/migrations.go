// Package migrations contains the store's schema, one migration per table.
// Each file registers itself from init(); importing this package is enough
// for migration.Runner to see them.
package migrations
