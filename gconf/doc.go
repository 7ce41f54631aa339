/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object under its package name. The
object is loaded from the "gconf" section of the genesis file and stored in
the database, so every node applies the same limits.
*/
package gconf
