package catalogue

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// catalogueFile is the on-disk shape of a catalogue.
//
//	tokens:
//	  - name: kw_for
//	    literal: for
//	  - name: identifier
//	    regex: "[a-zA-Z_][a-zA-Z_0-9]*"
//	  - name: gap
//	    regex: "[ \t\r\n]+"
type catalogueFile struct {
	Tokens []Entry `yaml:"tokens"`
}

// Parse builds a catalogue from YAML catalogue data.
// Declaration order in the file is preserved.
func Parse(data []byte) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}
	if len(file.Tokens) == 0 {
		return nil, fmt.Errorf("catalogue declares no tokens")
	}

	c := New()
	for _, e := range file.Tokens {
		if err := c.Add(e); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load reads and parses a catalogue file.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}
	return Parse(data)
}
