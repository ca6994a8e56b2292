package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shashiranjanraj/storefront/config"
)

// ─── Manager ──────────────────────────────────────────────────────────────────

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the local disk, and the s3 disk when S3_BUCKET is set.
func Connect(ctx context.Context) error {
	local := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	Register("local", local)

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(ctx)
		if err != nil {
			return err
		}
		Register("s3", d)
	}

	name := config.StorageDefault()
	mu.RLock()
	_, ok := disks[name]
	mu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: default disk %q is not configured", name)
	}

	mu.Lock()
	defaultDisk = name
	mu.Unlock()
	return nil
}

// Register plugs in a disk under name.
func Register(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

// SetDefault selects the disk used by Default and URL.
func SetDefault(name string) {
	mu.Lock()
	defaultDisk = name
	mu.Unlock()
}

// Use returns the named disk.
func Use(name string) (Disk, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := disks[name]
	return d, ok
}

// Default returns the default disk, falling back to a local disk with the
// configured root when nothing was registered.
func Default() Disk {
	mu.RLock()
	d, ok := disks[defaultDisk]
	mu.RUnlock()
	if ok {
		return d
	}

	local := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	Register("local", local)
	return local
}

// URL resolves a stored reference to a public URL. Absolute http(s) URLs
// and empty references are returned unchanged.
func URL(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return Default().URL(ref)
}
