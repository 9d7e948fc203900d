// Package resource implements the flat-file JSON resource cache.
package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
)

// Resource caches one JSON document per named variant of a package under
// <storage>/<package>[-<name>].json. Writers are last-writer-wins.
type Resource struct {
	pkg      string
	storage  string
	recorder formsynergy.ErrorRecorder
	doc      any
}

// Option configures a Resource.
type Option func(*Resource)

// WithRecorder sets where storage failures are recorded.
func WithRecorder(recorder formsynergy.ErrorRecorder) Option {
	return func(r *Resource) {
		r.recorder = recorder
	}
}

// New creates a resource cache for pkg in the storage directory. An empty
// storage means local storage is disabled.
func New(pkg, storage string, opts ...Option) *Resource {
	r := &Resource{
		pkg:     pkg,
		storage: storage,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Package returns the package name.
func (r *Resource) Package() string {
	return r.pkg
}

// Path returns the file backing the optional named variant.
func (r *Resource) Path(name ...string) string {
	file := r.pkg
	if len(name) > 0 && name[0] != "" {
		file += constants.ResourceNameSeparator + name[0]
	}

	return filepath.Join(r.storage, file+constants.ResourceFileExt)
}

// Store writes data as the whole document, replacing previous content.
func (r *Resource) Store(data any, name ...string) error {
	err := r.writable()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.pkg, err)
	}

	return r.write(r.Path(name...), encoded)
}

// Update shallow-merges newData into the stored document. Nothing is written
// when no document exists yet or when it is empty.
func (r *Resource) Update(newData map[string]any, name ...string) error {
	err := r.writable()
	if err != nil {
		return err
	}

	path := r.Path(name...)

	existing, ok, err := read(path)
	if err != nil || !ok {
		return err
	}

	current, _ := existing.(map[string]any)
	if len(current) == 0 {
		return nil
	}

	for key, value := range newData {
		current[key] = value
	}

	encoded, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.pkg, err)
	}

	return r.write(path, encoded)
}

// Get reads the document and remembers it for Find.
func (r *Resource) Get(name ...string) (any, bool) {
	if r.storage == "" {
		return nil, false
	}

	doc, ok, err := read(r.Path(name...))
	if err != nil {
		r.record(err.Error())

		return nil, false
	}

	if !ok {
		return nil, false
	}

	r.doc = doc

	return doc, true
}

// Find looks up a top-level key in the document last returned by Get.
func (r *Resource) Find(key string) (any, bool) {
	return formsynergy.Index(r.doc, key)
}

func (r *Resource) writable() error {
	if r.storage != "" {
		return nil
	}

	r.record(r.pkg + " Check storage permission")

	return fmt.Errorf("%w: %s", formsynergy.ErrStorageUnwritable, r.pkg)
}

func (r *Resource) write(path string, data []byte) error {
	err := os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		r.record(err.Error())

		return fmt.Errorf("%w: %w", formsynergy.ErrStorageUnwritable, err)
	}

	return nil
}

func (r *Resource) record(message string) {
	if r.recorder != nil {
		r.recorder.Error(constants.ErrorKindStore, message)
	}
}

func read(path string) (any, bool, error) {
	// path is built from the storage directory and the package name
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc any

	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", path, err)
	}

	return doc, true, nil
}
