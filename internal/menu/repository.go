package menu

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"path"
)

//go:embed data/*.yaml
var embeddedData embed.FS

var ErrSourceNotFound = errors.New("catalog source not found")

// Source file names, one per menu mode plus the add-on table.
const (
	SourceJain          = "jain.yaml"
	SourceVegPackage    = "veg_package.yaml"
	SourceCustomization = "customization.yaml"
	SourceCocktail      = "cocktail.yaml"
	SourcePackages      = "packages.yaml"
	SourceAddons        = "addons.yaml"
)

// SourceFiles lists every file a complete catalog must provide.
var SourceFiles = []string{
	SourceJain,
	SourceVegPackage,
	SourceCustomization,
	SourceCocktail,
	SourcePackages,
	SourceAddons,
}

func sourceFor(mode Mode) string {
	switch mode {
	case ModeJain:
		return SourceJain
	case ModeVegPackage:
		return SourceVegPackage
	case ModeCustomized:
		return SourceCustomization
	case ModeCocktail:
		return SourceCocktail
	case ModeFixedPackages:
		return SourcePackages
	}
	return ""
}

// Repository returns raw catalog documents by file name.
// Service depends ONLY on this interface.
type Repository interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// FSRepository reads catalog documents from a filesystem.
type FSRepository struct {
	fsys fs.FS
	dir  string
}

func NewFSRepository(fsys fs.FS, dir string) *FSRepository {
	return &FSRepository{fsys: fsys, dir: dir}
}

// NewEmbeddedRepository serves the catalog compiled into the binary.
func NewEmbeddedRepository() *FSRepository {
	return NewFSRepository(embeddedData, "data")
}

func (r *FSRepository) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := fs.ReadFile(r.fsys, path.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSourceNotFound
	}
	return data, err
}

// ObjectGetter fetches objects from a bucket.
type ObjectGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// BucketRepository reads catalog documents published by catalog-sync.
type BucketRepository struct {
	objects ObjectGetter
	prefix  string
}

func NewBucketRepository(objects ObjectGetter, prefix string) *BucketRepository {
	return &BucketRepository{objects: objects, prefix: prefix}
}

func (r *BucketRepository) Load(ctx context.Context, name string) ([]byte, error) {
	return r.objects.Get(ctx, path.Join(r.prefix, name))
}
