package utils

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

func ValidateImageFileType(w http.ResponseWriter, header *multipart.FileHeader) bool {
	mimeType := header.Header.Get("Content-Type")
	if !SupportedImageTypes[mimeType] {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG, GIF.", http.StatusBadRequest)
		return false
	}
	return true
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveImageWithThumb stores the uploaded image under folder and writes a
// Lanczos-resized thumbnail of thumbWidth next to it under folder/thumb.
// Returns the stored filename and the thumbnail filename.
func SaveImageWithThumb(file multipart.File, header *multipart.FileHeader, folder string, thumbWidth int) (string, string, error) {
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf)) // formats registered by imaging
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image %q: %w", header.Filename, err)
	}
	if b := img.Bounds(); b.Dx() > 4000 || b.Dy() > 4000 {
		return "", "", fmt.Errorf("image %q exceeds 4000px limit", header.Filename)
	}

	if err := EnsureDir(folder); err != nil {
		return "", "", err
	}

	filename := fmt.Sprintf("%s%s", GenerateRandomString(12), filepath.Ext(header.Filename))
	if err := os.WriteFile(filepath.Join(folder, filename), buf, 0644); err != nil {
		return "", "", err
	}

	thumbDir := filepath.Join(folder, "thumb")
	if err := EnsureDir(thumbDir); err != nil {
		return filename, "", err
	}
	// thumbnails always go out as jpg; webp has no encoder here
	thumbName := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	thumbImg := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, thumbName)); err != nil {
		return filename, "", fmt.Errorf("thumbnail save failed: %w", err)
	}

	return filename, thumbName, nil
}
