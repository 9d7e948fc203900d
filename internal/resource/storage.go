package resource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
)

// PrepareStorage creates path/dir and checks that files can be written there.
// It returns the directory to use, or ErrStorageUnwritable.
func PrepareStorage(path, dir string) (string, error) {
	storage := filepath.Join(path, dir)

	err := os.MkdirAll(storage, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("%w: %w", formsynergy.ErrStorageUnwritable, err)
	}

	probe := filepath.Join(storage, constants.StorageProbeFile)

	err = os.WriteFile(probe, nil, constants.ConfigFilePerm)
	if err != nil {
		return "", fmt.Errorf("%w: %w", formsynergy.ErrStorageUnwritable, err)
	}

	_ = os.Remove(probe)

	return storage, nil
}

// StoreFile writes raw data to <storage>/<name>.<ext>. Empty data is skipped.
func StoreFile(storage, name, ext string, data []byte) error {
	if storage == "" {
		return fmt.Errorf("%w: %s", formsynergy.ErrStorageUnwritable, name)
	}

	if len(data) == 0 {
		return nil
	}

	err := os.WriteFile(filepath.Join(storage, name+"."+ext), data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("%w: %w", formsynergy.ErrStorageUnwritable, err)
	}

	return nil
}
