package main

import (
	"context"
	"flag"
	"os"
	"path"

	"biteaffair/internal/config"
	"biteaffair/internal/logging"
	"biteaffair/internal/menu"
	"biteaffair/internal/storage"

	log "github.com/sirupsen/logrus"
)

// catalog-sync validates a directory of catalog YAML files and publishes
// them to the bucket the API reads when catalog.source is r2.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dir := flag.String("dir", "internal/menu/data", "directory holding the catalog files")
	dryRun := flag.Bool("dry-run", false, "validate only")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("❌ config load failed: ", err)
	}
	logging.Setup(cfg.Logging)

	ctx := context.Background()

	// ───────────────────────── VALIDATE ─────────────────────────
	local := menu.NewFSRepository(os.DirFS(*dir), ".")
	if err := menu.ValidateCatalog(ctx, local); err != nil {
		log.Fatal("❌ catalog is invalid: ", err)
	}
	log.WithField("dir", *dir).Info("✅ catalog validated")

	if *dryRun {
		return
	}

	// ───────────────────────── PUBLISH ─────────────────────────
	if missing := cfg.R2.Missing(); len(missing) > 0 {
		log.Fatalf("❌ missing R2 settings: %v", missing)
	}

	r2Client, err := storage.NewR2Client(ctx, cfg.R2)
	if err != nil {
		log.Fatal("❌ R2 init failed: ", err)
	}

	for _, name := range menu.SourceFiles {
		if err := menu.ValidateFileExtension(name); err != nil {
			log.Fatalf("❌ %s: %v", name, err)
		}

		data, err := local.Load(ctx, name)
		if err != nil {
			log.Fatalf("❌ read %s: %v", name, err)
		}

		key := path.Join(cfg.Catalog.Prefix, name)
		url, err := r2Client.Put(ctx, key, data, "application/yaml")
		if err != nil {
			log.Fatalf("❌ upload %s: %v", key, err)
		}
		log.WithFields(log.Fields{"key": key, "url": url, "bytes": len(data)}).Info("published")
	}
}
