package patgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Definition is one name/pattern entry in a structured definition file.
type Definition struct {
	Name    string `json:"name" yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Load reads line-oriented definitions of the form
//
//	# comment
//	name = pattern
//
// Blank lines are skipped; lines whose first non-space character is '#'
// are comments. Whitespace around the name and '=' is ignored, the pattern
// runs to the end of the line. Loading stops at the first malformed line
// (*LineError) or malformed pattern.
func (r *Registry) Load(rd io.Reader) error {
	sc := bufio.NewScanner(rd)
	line := 0
	for sc.Scan() {
		line++
		name, expr, ok, err := splitDefinition(sc.Text())
		if err != nil {
			return &LineError{Line: line, Msg: err.Error()}
		}
		if !ok {
			continue
		}
		if err := r.DefineString(name, expr); err != nil {
			return fmt.Errorf("line %d: %q: %w", line, name, err)
		}
	}
	return sc.Err()
}

// LoadFile loads definitions from path, dispatching on the file
// extension: .json and .yaml/.yml use the structured formats, anything
// else the line-oriented format.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return r.LoadJSON(f)
	case ".yaml", ".yml":
		return r.LoadYAML(f)
	default:
		return r.Load(f)
	}
}

// LoadJSON reads an ordered JSON array of definitions:
//
//	[{"name": "digit", "pattern": "[0-9]"}, ...]
func (r *Registry) LoadJSON(rd io.Reader) error {
	var defs []Definition
	if err := json.NewDecoder(rd).Decode(&defs); err != nil {
		return fmt.Errorf("decode definitions: %w", err)
	}
	for _, d := range defs {
		if d.Name == "" {
			return errors.New("definition with empty name")
		}
		if err := r.DefineString(d.Name, d.Pattern); err != nil {
			return fmt.Errorf("%q: %w", d.Name, err)
		}
	}
	return nil
}

// LoadYAML reads a YAML mapping of name to pattern:
//
//	digit: "[0-9]"
//	id: "ID-$digit{2,2}"
//
// Decoding goes through yaml.Node so definitions apply in file order.
func (r *Registry) LoadYAML(rd io.Reader) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(rd).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode definitions: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return errors.New("definitions must be a mapping of name to pattern")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if err := r.DefineString(key.Value, val.Value); err != nil {
			return fmt.Errorf("%q: %w", key.Value, err)
		}
	}
	return nil
}

type lineState int

const (
	lineDefault lineState = iota
	lineName
	lineAfterName
	lineBeforeValue
	lineValue
)

// splitDefinition splits one "name = pattern" line with a small state
// machine. ok is false for blank lines and comments.
func splitDefinition(s string) (name, value string, ok bool, err error) {
	state := lineDefault
	var nameB, valueB strings.Builder
	for _, r := range s {
		switch state {
		case lineDefault:
			switch {
			case r == ' ' || r == '\t':
			case r == '#':
				return "", "", false, nil
			default:
				nameB.WriteRune(r)
				state = lineName
			}
		case lineName:
			switch {
			case r == ' ' || r == '\t':
				state = lineAfterName
			case r == '=':
				state = lineBeforeValue
			default:
				nameB.WriteRune(r)
			}
		case lineAfterName:
			switch {
			case r == ' ' || r == '\t':
			case r == '=':
				state = lineBeforeValue
			default:
				return "", "", false, errors.New("unexpected characters after variable name")
			}
		case lineBeforeValue:
			if r != ' ' && r != '\t' {
				valueB.WriteRune(r)
				state = lineValue
			}
		case lineValue:
			valueB.WriteRune(r)
		}
	}
	if state == lineDefault {
		// Blank line.
		return "", "", false, nil
	}
	if state != lineValue {
		return "", "", false, errors.New("line ended in an unexpected state")
	}
	return nameB.String(), valueB.String(), true, nil
}
