// Package place writes routed media files to their destination, converting
// HEIC/HEIF images to JPEG and byte-copying everything else.
package place

import (
	"fmt"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jdeng/goheif"
)

// jpegQuality is the encode quality for converted images.
const jpegQuality = 90

// Status describes what Place did with a file.
type Status string

const (
	StatusCopied          Status = "copied"
	StatusConverted       Status = "converted"
	StatusSkippedExisting Status = "skipped_existing"
)

// Result is the outcome of placing one file.
type Result struct {
	DestPath string
	Status   Status
}

// heifExts are the source extensions rewritten to JPEG on placement.
var heifExts = map[string]bool{".heic": true, ".heif": true}

// Place copies src to dest. HEIC/HEIF sources are decoded and re-encoded as
// JPEG, with the destination extension rewritten to .jpg; other sources are
// byte-copied preserving mode and modification time.
//
// If the (possibly rewritten) destination already exists the file is skipped
// silently. The check is by path only; re-runs never refresh an
// already-placed file even when the source content changed.
//
// Errors are per-file: callers log them and continue the run.
func Place(src, dest string) (Result, error) {
	ext := strings.ToLower(filepath.Ext(src))
	if heifExts[ext] {
		dest = rewriteExt(dest, ".jpg")
		if exists(dest) {
			return Result{DestPath: dest, Status: StatusSkippedExisting}, nil
		}
		if err := convertToJPEG(src, dest); err != nil {
			return Result{DestPath: dest}, fmt.Errorf("convert %s: %w", src, err)
		}
		return Result{DestPath: dest, Status: StatusConverted}, nil
	}

	if exists(dest) {
		return Result{DestPath: dest, Status: StatusSkippedExisting}, nil
	}
	if err := copyFile(src, dest); err != nil {
		return Result{DestPath: dest}, fmt.Errorf("copy %s: %w", src, err)
	}
	return Result{DestPath: dest, Status: StatusCopied}, nil
}

func rewriteExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// convertToJPEG decodes the whole HEIF image into memory and re-encodes it
// at the destination.
func convertToJPEG(src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	img, err := goheif.Decode(f)
	if err != nil {
		return fmt.Errorf("decode heif: %w", err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("encode jpeg: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}
	return nil
}

// copyFile copies src to dest, preserving the source's mode and modification
// time.
func copyFile(src, dest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("copy content: %w", err)
	}
	if err := dstFile.Sync(); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}

	if err := os.Chtimes(dest, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("preserve mtime: %w", err)
	}
	return nil
}
