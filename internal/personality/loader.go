package personality

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
)

// Load reads a personality from a JSON file. A missing file, unreadable
// file, malformed JSON or failed validation all fall back to the default
// template; loading never fails, it only warns.
func Load(path string, logger *zap.Logger) *domain.Personality {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("personality file not found, using default template",
			zap.String("path", path))
		return DefaultTemplate()
	}
	if err != nil {
		logger.Error("failed to read personality file, using default template",
			zap.String("path", path), zap.Error(err))
		return DefaultTemplate()
	}

	var p domain.Personality
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Error("failed to parse personality file, using default template",
			zap.String("path", path), zap.Error(err))
		return DefaultTemplate()
	}

	if errs := Validate(&p); len(errs) > 0 {
		for _, verr := range errs {
			logger.Warn("personality validation error",
				zap.String("path", path), zap.String("problem", verr.Error()))
		}
		logger.Warn("personality file invalid, using default template",
			zap.String("path", path))
		return DefaultTemplate()
	}

	logger.Info("loaded personality", zap.String("name", p.Name))
	return &p
}
