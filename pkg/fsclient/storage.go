package fsclient

import (
	"sort"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/internal/resource"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
)

var _ formsynergy.ErrorRecorder = (*App)(nil)

// Storage sets the local storage directory to path/dir, creating it when
// needed. An unwritable directory disables local storage and is recorded
// under the "Store" error kind.
func (a *App) Storage(path, dir string) error {
	storage, err := resource.PrepareStorage(path, dir)
	if err != nil {
		a.storage = ""
		a.Error(constants.ErrorKindStore, err.Error())

		return err
	}

	a.storage = storage

	return nil
}

// StorageDir returns the local storage directory, empty when disabled.
func (a *App) StorageDir() string {
	return a.storage
}

// Resource returns the JSON cache of pkg in the storage directory.
func (a *App) Resource(pkg string) formsynergy.ResourceCache {
	return resource.New(pkg, a.storage, resource.WithRecorder(a))
}

// StoreFile writes raw data to <storage>/<name>.<ext>. Empty data is skipped.
func (a *App) StoreFile(name, ext string, data []byte) error {
	err := resource.StoreFile(a.storage, name, ext, data)
	if err != nil {
		a.Error(constants.ErrorKindStore, name+" Check storage permission")

		return err
	}

	return nil
}

// Error records a non-fatal error of kind.
func (a *App) Error(kind, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.errors[kind] = append(a.errors[kind], message)
}

// Errors returns the recorded messages of kind, or all of them when kind is empty.
func (a *App) Errors(kind string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if kind != "" {
		return append([]string(nil), a.errors[kind]...)
	}

	kinds := make([]string, 0, len(a.errors))
	for kind := range a.errors {
		kinds = append(kinds, kind)
	}

	sort.Strings(kinds)

	var all []string
	for _, kind := range kinds {
		all = append(all, a.errors[kind]...)
	}

	return all
}
