// Package fixtures bundles canned JSON payloads used when the backend is
// unreachable. Loading never touches the network and never returns an
// error: a missing document or a shape mismatch yields nil.
package fixtures

import (
	"embed"
	"encoding/json"
	"log"
)

//go:embed data/*.json
var bundle embed.FS

// Name identifies one bundled document.
type Name string

const (
	None           Name = ""
	Feed           Name = "feed"
	OrderOptionsV1 Name = "order_options_v1"
	RecipesV1      Name = "recipes_v1"
	RecipesLinksV1 Name = "recipes_links_v1"
	Profile        Name = "profile"
)

// Load decodes the named document as T. Nil means the document does not
// exist or does not match the requested shape.
func Load[T any](name Name) *T {
	if name == None {
		return nil
	}
	data, err := bundle.ReadFile("data/" + string(name) + ".json")
	if err != nil {
		log.Printf("[fixtures] %s: %v", name, err)
		return nil
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		log.Printf("[fixtures] decode %s: %v", name, err)
		return nil
	}
	return &out
}
