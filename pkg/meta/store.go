package meta

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Extension is the file extension of metadata files, without the dot.
const Extension = "meta"

// MetaPath returns the metadata path paired with an asset file.
func MetaPath(assetPath string) string {
	return assetPath + "." + Extension
}

// AssetPath returns the asset file paired with a metadata path.
func AssetPath(metaPath string) string {
	return strings.TrimSuffix(metaPath, "."+Extension)
}

// IsMetaFile reports whether path names a metadata file.
func IsMetaFile(path string) bool {
	return strings.HasSuffix(path, "."+Extension)
}

// Validate checks that r can be written.
func (r Record) Validate() error {
	if r.Payload == nil {
		return errors.New("payload: cannot be blank")
	}
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Version, validation.Required, validation.Min(1), validation.Max(CurrentVersion)),
		validation.Field(&r.UUID, validation.Required),
		validation.Field(&r.LastModified, validation.Required),
	); err != nil {
		return err
	}
	if m, ok := r.Terrain(); ok {
		return validation.ValidateStruct(&m,
			validation.Field(&m.Size, validation.Required, validation.Min(1)),
		)
	}
	return nil
}

// Load reads and parses the metadata file at path.
func Load(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	return decode(f, path)
}

// Save writes r to path. The file is replaced atomically: either the new
// content is fully in place or the previous file is left untouched.
func Save(path string, r Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("meta: invalid record %s: %w", r.UUID, err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return err
	}
	return writeAtomic(path, buf.Bytes())
}

// writeAtomic writes data to a temp file in the target directory, syncs it and
// renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".meta-tmp-*")
	if err != nil {
		return &IOError{Op: "create temp", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Op: "sync", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	success = true
	return nil
}
