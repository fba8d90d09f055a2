package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// DiscoverSources lists the Swift sources directly under dir, lexically
// sorted so the descriptor is reproducible across runs. A missing directory
// is not an error; it simply yields no sources.
func DiscoverSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing sources in %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".swift") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
