package menu

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var allowedExt = map[string]bool{
	".yaml": true,
	".yml":  true,
}

func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return errors.New("file extension missing")
	}

	if !allowedExt[ext] {
		return errors.New("file type not allowed")
	}

	return nil
}

// ValidateCatalog loads and adapts every source the repository serves and
// reports all failures at once.
func ValidateCatalog(ctx context.Context, repo Repository) error {
	var errs []error

	for _, mode := range Modes {
		source := sourceFor(mode)
		data, err := repo.Load(ctx, source)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", source, err))
			continue
		}
		if _, err := adapt(mode, data); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", source, err))
		}
	}

	data, err := repo.Load(ctx, SourceAddons)
	if err == nil {
		_, err = adaptAddons(data)
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", SourceAddons, err))
	}

	return errors.Join(errs...)
}
