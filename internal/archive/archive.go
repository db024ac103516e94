// Package archive packs plugin bundle folders into tar.gz files.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Info describes a written archive.
type Info struct {
	Path   string
	SHA256 string
	Size   int64
}

// Create packs srcDir into a tar.gz at destPath, overwriting any existing
// file there. Entries are rooted under the source folder's base name, so
// extracting reproduces the bundle folder. File modification times are
// zeroed so an unchanged bundle produces an identical archive on re-runs.
func Create(srcDir, destPath string) (*Info, error) {
	if _, err := os.Stat(srcDir); err != nil {
		return nil, fmt.Errorf("read bundle folder %s: %w", srcDir, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("create archive %s: %w", destPath, err)
	}

	hasher := sha256.New()
	gz := gzip.NewWriter(io.MultiWriter(out, hasher))
	tw := tar.NewWriter(gz)

	base := filepath.Base(srcDir)
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(filepath.Join(base, rel))

		info, err := d.Info()
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = name
		if d.IsDir() {
			hdr.Name += "/"
		}
		hdr.ModTime = time.Time{}
		hdr.AccessTime = time.Time{}
		hdr.ChangeTime = time.Time{}
		hdr.Uid = 0
		hdr.Gid = 0
		hdr.Uname = ""
		hdr.Gname = ""

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})

	if walkErr == nil {
		walkErr = tw.Close()
	} else {
		tw.Close()
	}
	if err := gz.Close(); err != nil && walkErr == nil {
		walkErr = err
	}

	if walkErr != nil {
		out.Close()
		os.Remove(destPath)
		return nil, fmt.Errorf("archive %s: %w", srcDir, walkErr)
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("finish archive %s: %w", destPath, err)
	}

	stat, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("stat archive %s: %w", destPath, err)
	}

	return &Info{
		Path:   destPath,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
		Size:   stat.Size(),
	}, nil
}
