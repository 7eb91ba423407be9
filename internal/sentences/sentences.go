// Package sentences provides the reference sentences typed in each round.
package sentences

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults is the built-in sentence list.
var Defaults = []string{
	"Programming is not about what you know; it's about what you can figure out.",
	"The best way to predict the future is to invent it yourself.",
	"Quality is not an act, it is a habit that we must cultivate.",
	"To understand recursion, one must first understand recursion.",
	"Simplicity is the ultimate sophistication in modern design.",
}

type yamlPack struct {
	Sentences []string `yaml:"sentences"`
}

// Load reads sentences from path. YAML files hold a list of strings or a
// mapping with a "sentences" list; other files hold one sentence per line.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sentences yaml: %w", err)
		}
	default:
		raw, err = scanLines(data)
		if err != nil {
			return nil, err
		}
	}
	list := Clean(raw)
	if len(list) == 0 {
		return nil, fmt.Errorf("sentence list is empty")
	}
	return list, nil
}

// Clean normalizes whitespace and drops blank entries.
func Clean(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func decodeYAML(data []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var pack yamlPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, err
	}
	return pack.Sentences, nil
}

func scanLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
