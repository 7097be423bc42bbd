package markup

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/mlapinski/openmemo/internal/domain"
)

// ResourceFromFile reads the file at path, resolved relative to baseDir,
// and builds a domain.Resource carrying its bytes and guessed MIME type.
func ResourceFromFile(baseDir, path string) (domain.Resource, error) {
	full := filepath.Join(baseDir, path)
	data, err := os.ReadFile(full)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("reading resource %q: %w", path, err)
	}
	return domain.Resource{
		Filename: filepath.Base(path),
		MimeType: mime.TypeByExtension(filepath.Ext(path)),
		Data:     data,
	}, nil
}
