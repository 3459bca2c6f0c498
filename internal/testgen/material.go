package testgen

import (
	"os"
	"path/filepath"
)

// MaterialSource loads the source material text a test is generated from.
type MaterialSource interface {
	// Load returns the material text for a short name like "z5". A missing
	// material yields *Error with KindMaterialMissing.
	Load(name string) (string, error)
}

// DirSource reads materials as "<name>.txt" files from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Load(name string) (string, error) {
	// Strip any path components so a name can't escape the directory.
	name = filepath.Base(name)

	path := filepath.Join(s.Dir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &Error{Kind: KindMaterialMissing, Detail: name, Err: err}
		}
		return "", &Error{Kind: KindUnknown, Detail: "reading material " + name, Err: err}
	}

	return string(data), nil
}
