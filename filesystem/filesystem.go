// Package filesystem routes every disk access through a swappable afero backend.
//
// Production code runs against the operating system; tests swap in an
// in-memory backend so nothing touches the host.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the afero handle all packages read and write through.
func API() afero.Afero {
	return backend
}

// SetOsFs points the backend back at the real operating system filesystem.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs swaps in a volatile in-memory backend, used by tests.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
