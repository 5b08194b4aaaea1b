package vcfio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadExcludedSamples reads one sample identifier per line from path,
// ignoring blank lines and lines beginning with "#".
func LoadExcludedSamples(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open excludesamples file: %w", err)
	}
	defer f.Close()

	return parseExcludedSamples(f)
}

func parseExcludedSamples(r io.Reader) (map[string]struct{}, error) {
	excluded := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		excluded[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan excludesamples file: %w", err)
	}
	return excluded, nil
}
