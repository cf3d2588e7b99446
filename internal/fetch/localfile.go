package fetch

import (
	"errors"
	"os"
)

var errFileNotFound = os.ErrNotExist

func defaultReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errFileNotFound
		}
		return nil, err
	}
	return data, nil
}
