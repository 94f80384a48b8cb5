// Package ctx holds the key type for values roster puts into a context.Context.
package ctx

// CTXKey is the type used by all keys put in a context.
// As recommended by the package context, roster defines and uses its own data type for keys in the use of WithValue,
// so they never collide with keys of other packages.
type CTXKey string
