// Package migrations contains the schema migrations. Each file registers
// its migrations from init(); cmd/storefront imports the package for that
// side effect.
package migrations
