package payload

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	// Decoders for DecodeImage.
	_ "image/gif"
	_ "image/jpeg"
)

const filePrefix = "shelf_"

// Materializer writes pasted or dropped content into a temp directory.
// Files it creates are never removed by the application.
type Materializer struct {
	dir string
	now func() time.Time
}

// NewMaterializer creates a materializer writing into dir.
func NewMaterializer(dir string) *Materializer {
	return &Materializer{dir: dir, now: time.Now}
}

// Dir returns the target directory.
func (m *Materializer) Dir() string {
	return m.dir
}

// WriteText stores text in a new UTF-8 .txt file and returns its path.
func (m *Materializer) WriteText(text string) (string, error) {
	return m.write(".txt", []byte(text))
}

// WriteImage encodes img as PNG into a new file and returns its path.
func (m *Materializer) WriteImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return m.write(".png", buf.Bytes())
}

func (m *Materializer) write(ext string, data []byte) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir %s: %w", m.dir, err)
	}

	now := m.now()
	base := fmt.Sprintf("%s%s_%03d", filePrefix, now.Format("20060102_150405"), now.Nanosecond()/int(time.Millisecond))
	for n := 0; ; n++ {
		name := base + ext
		if n > 0 {
			name = fmt.Sprintf("%s_%d%s", base, n, ext)
		}
		path := filepath.Join(m.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close %s: %w", path, err)
		}
		return path, nil
	}
}

// DecodeImage decodes PNG, JPEG or GIF data.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
