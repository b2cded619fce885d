package securestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteSealedJSON marshals v, seals it and replaces path via a temp file
// in the same directory. Parent directories are created 0700, the file 0600.
func WriteSealedJSON(path, passphrase string, aad []byte, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	defer zeroBytes(payload)
	sealed, err := Seal(passphrase, payload, aad)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(sealed); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ReadSealedJSON opens path and unmarshals the plaintext into v.
func ReadSealedJSON(path, passphrase string, aad []byte, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	plain, err := Open(passphrase, raw, aad)
	if err != nil {
		return err
	}
	defer zeroBytes(plain)
	if err := json.Unmarshal(plain, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
