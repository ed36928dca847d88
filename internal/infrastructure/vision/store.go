package vision

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // BMP снимки платы
	_ "golang.org/x/image/tiff" // TIFF снимки платы

	"pcb-inspector/internal/domain/port"
)

// FileStore загружает и сохраняет изображения на диске.
type FileStore struct{}

// NewFileStore создаёт файловое хранилище изображений.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Load открывает фото с учётом EXIF-ориентации.
func (s *FileStore) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return img, nil
}

// Save пишет картинку, создавая каталог при необходимости. Формат по расширению.
func (s *FileStore) Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save image %s: %w", path, err)
	}
	return nil
}

// Decode разбирает фото из памяти (JPEG, PNG, GIF, BMP, TIFF).
func (s *FileStore) Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Encode кодирует картинку в PNG.
func (s *FileStore) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	_ port.ImageLoader = (*FileStore)(nil)
	_ port.ImageSaver  = (*FileStore)(nil)
	_ port.ImageCodec  = (*FileStore)(nil)
)
