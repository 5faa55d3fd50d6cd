// README: Common identifier and coordinate value objects shared by modules.
package types

// ID is an opaque entity identifier (UUIDs for orders, upstream user ids for people).
type ID string

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}
