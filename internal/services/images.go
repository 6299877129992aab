package services

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ImagePath is the public path under which uploaded images are served.
const ImagePath = "/images/"

func ImageURL(filename string) string {
	return ImagePath + filename
}

// removeImage deletes the file behind an image URL. Only the base name is
// used so a stored URL can never point outside dir.
func removeImage(dir, url string) error {
	if dir == "" || url == "" || !strings.HasPrefix(url, ImagePath) {
		return nil
	}
	name := path.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
