package pbxproj

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// IDLength is the fixed width of every object identifier in the descriptor.
const IDLength = 24

// IDGenerator mints the identifiers graph nodes are declared under: the
// first 24 hex digits of a random UUID, uppercased. The randomness source
// is injected so tests can substitute a deterministic one.
type IDGenerator struct {
	src io.Reader
}

// NewIDGenerator creates a generator reading from src. A nil src means
// crypto/rand.
func NewIDGenerator(src io.Reader) *IDGenerator {
	if src == nil {
		src = rand.Reader
	}
	return &IDGenerator{src: src}
}

// Next returns a fresh identifier. Failure of the randomness source is
// fatal to graph construction, so the error is propagated as-is.
func (g *IDGenerator) Next() (string, error) {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return "", fmt.Errorf("generating identifier: %w", err)
	}
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return hex[:IDLength], nil
}
