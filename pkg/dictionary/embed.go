package dictionary

import (
	"embed"
	"log"
	"strings"
)

//go:embed data/words.txt
var embeddedFS embed.FS

// loadEmbedded merges the built-in English word list. It is the last
// fallback when no word list is found on disk, so a checker always has
// something to work with.
func (d *Dictionary) loadEmbedded() {
	data, err := embeddedFS.ReadFile("data/words.txt")
	if err != nil {
		log.Printf("[Dictionary] Error opening embedded word list: %v", err)
		return
	}

	count := d.mergeLines(strings.Split(string(data), "\n"))
	log.Printf("[Dictionary] Loaded %d embedded words for %s", count, d.lang.Name())
}
