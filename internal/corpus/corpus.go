// Package corpus loads the reference case corpus and provides the text
// normalization primitives used for style briefs and plagiarism checks.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Seed is one reference case narrative from the corpus file.
type Seed struct {
	CaseID     string `json:"case_id"`
	SourceType string `json:"source_type,omitempty"`
	SourceName string `json:"source_name,omitempty"`
	Text       string `json:"text"`
}

// LoadSeeds reads a JSONL corpus file. Blank lines are skipped, any
// malformed line or a seed without text is an error.
func LoadSeeds(path string) ([]Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	var seeds []Seed
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var seed Seed
		if err := json.Unmarshal([]byte(line), &seed); err != nil {
			return nil, fmt.Errorf("corpus line %d: %w", lineNo, err)
		}
		if strings.TrimSpace(seed.Text) == "" {
			return nil, fmt.Errorf("corpus line %d: seed has no text", lineNo)
		}
		if seed.CaseID == "" {
			seed.CaseID = fmt.Sprintf("SEED-%04d", lineNo)
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	return seeds, nil
}
