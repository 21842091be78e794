// Package fileutil holds the file replacement and renaming helpers shared by
// the utilities that rewrite files in place.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ReplaceFile overwrites dst with the contents of src. The copy is staged
// next to dst, verified by size and SHA256, given dst's permissions, and then
// renamed into place, so dst is never left half-written.
func ReplaceFile(src, dst string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(dst); err == nil {
		mode = info.Mode().Perm()
	}

	staged, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("stage replacement: %w", err)
	}
	stagedPath := staged.Name()
	_ = staged.Close()

	if err := copyVerified(src, stagedPath); err != nil {
		_ = os.Remove(stagedPath)
		return err
	}
	if err := os.Chmod(stagedPath, mode); err != nil {
		_ = os.Remove(stagedPath)
		return fmt.Errorf("chmod replacement: %w", err)
	}
	if err := os.Rename(stagedPath, dst); err != nil {
		_ = os.Remove(stagedPath)
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}

// copyVerified streams src to dst with SHA256 + size integrity verification.
// Removes dst on mismatch.
func copyVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, dstHasher), io.TeeReader(in, srcHasher))
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

// RenameNoReplace renames oldPath to newPath unless newPath already exists,
// in which case it returns an error wrapping fs.ErrExist.
func RenameNoReplace(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(oldPath, newPath)
}
