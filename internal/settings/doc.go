// Package settings implements the platform's configuration engine.
//
// Every recognized setting is declared in a compile-time registry carrying its
// default value, value type, validation rule and override policy. The
// effective value of a setting layers three sources, strongest last:
//
//	registry default -> GLOBAL row -> TENANT row
//
// The tenant layer only applies when the registry marks the key as
// tenant-overridable; a stale tenant row for a locked key is ignored at read
// time regardless of what is stored. Values are validated on write, never on
// read, and every successful mutation appends exactly one entry to the
// settings audit log.
package settings
