package upload

import (
	"fmt"
	"os"
	"path"
	"strings"

	"field-report-api/internal/util"

	"github.com/google/uuid"
)

// UploadService names and places incoming attachment files under Dir.
type UploadService struct {
	Dir string
}

func NewUploadService(dir string) (*UploadService, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadService{Dir: dir}, nil
}

// StoredName builds the server-side filename: a uuid prefix keeps names
// unique, the sanitized original base keeps them recognizable.
func (us *UploadService) StoredName(original, mime string) string {
	ext := util.ExtFromFilenameOrMime(original, mime)

	base := strings.TrimSpace(strings.TrimSuffix(original, path.Ext(original)))
	base = util.SanitizePart(base)
	if base == "" {
		base = "file"
	}

	return fmt.Sprintf("%s_%s%s", uuid.NewString(), base, ext)
}
