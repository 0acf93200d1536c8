package mcptools

import (
	"fmt"

	"github.com/chris-regnier/calnotes/internal/logs"
	"github.com/chris-regnier/calnotes/internal/shell"
)

// persist saves the store after a mutation and invalidates the prompt cache.
// A failed save leaves the change in memory; the caller reports the error.
func persist(store NoteStore, dataDir, action string) error {
	if err := store.Save(); err != nil {
		logs.Printf("mcp %s: save failed: %v", action, err)
		return fmt.Errorf("%s: %w", action, err)
	}
	if dataDir != "" {
		if err := shell.InvalidateCache(dataDir); err != nil {
			logs.Printf("mcp %s: invalidating prompt cache: %v", action, err)
		}
	}
	return nil
}

const previewLength = 100
