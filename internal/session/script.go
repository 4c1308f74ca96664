package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Op names an edit kind.
type Op string

const (
	OpSet    Op = "set"
	OpDelete Op = "delete"
	OpAppend Op = "append"
)

// Edit is one change to a table. Row is a zero-based position in the
// table as it stands when the edit is applied.
type Edit struct {
	ID        string            `yaml:"-" json:"id,omitempty"`
	Op        Op                `yaml:"op" json:"op"`
	Row       int               `yaml:"row,omitempty" json:"row,omitempty"`
	Column    string            `yaml:"column,omitempty" json:"column,omitempty"`
	Value     string            `yaml:"value,omitempty" json:"value,omitempty"`
	Values    map[string]string `yaml:"values,omitempty" json:"values,omitempty"`
	AppliedAt time.Time         `yaml:"-" json:"applied_at,omitempty"`
}

// Script is the on-disk form of a list of edits:
//
//	edits:
//	  - op: set
//	    row: 0
//	    column: Email
//	    value: ana@acme.com
//	  - op: delete
//	    row: 3
//	  - op: append
//	    values: {First Name: Zoe, Email: zoe@initech.io}
type Script struct {
	Edits []Edit `yaml:"edits"`
}

// LoadScript reads a YAML edit script.
func LoadScript(path string) ([]Edit, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("edit script not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read edit script: %w", err)
	}
	return ParseScript(b)
}

// ParseScript decodes a YAML edit script and checks every op is known.
func ParseScript(b []byte) ([]Edit, error) {
	var s Script
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse edit script: %w", err)
	}
	for i, e := range s.Edits {
		switch e.Op {
		case OpSet, OpDelete, OpAppend:
		default:
			return nil, fmt.Errorf("edit %d: unknown op %q", i+1, e.Op)
		}
	}
	return s.Edits, nil
}
