// Package private and subdirectories have
// no backward compatibility guarantees.
//
// This package is intentionally not named "internal",
// so that tools in this module and elsewhere can use
// the named placeholder compiler and the SQL scanner.
// Their public API is subject to change.
package private
