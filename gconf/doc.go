/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps at most one configuration record, stored under the
"_c:<package name>" key. Configuration is loaded from the genesis file and
validated before it is written.
*/
package gconf
