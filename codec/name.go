package codec

import (
	yangwire "github.com/reoring/yangwire"
)

// KeepName returns an override that writes a field under its Go identifier,
// bypassing the naming strategy.
func KeepName() yangwire.Override {
	return yangwire.Override{Name: func(ident string) string { return ident }}
}

// Rename returns an override that writes a field under a fixed wire name.
func Rename(name string) yangwire.Override {
	return yangwire.Override{Name: func(string) string { return name }}
}
