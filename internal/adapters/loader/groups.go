package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/stagetally/internal/domain/roster"
)

// decodeGroups reads a `{"Group": ["member", ...], ...}` object and keeps
// the key order of the document.
func decodeGroups(r io.Reader) ([]roster.Group, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrGroupsFormat
	}

	var groups []roster.Group
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, ErrGroupsFormat
		}
		var members []string
		if err := dec.Decode(&members); err != nil {
			return nil, fmt.Errorf("%w: group %q: %w", ErrGroupsFormat, name, err)
		}
		groups = append(groups, roster.Group{Name: name, Members: members})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return groups, nil
}
