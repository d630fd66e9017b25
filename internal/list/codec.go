package list

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Makepad-fr/impact/internal/model"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrCorrupt marks persisted data that cannot be turned back into a list.
var ErrCorrupt = errors.New("corrupt list data")

const actionsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "text", "weight", "completed"],
		"properties": {
			"id":        {"type": "integer"},
			"text":      {"type": "string", "minLength": 1},
			"weight":    {"type": "integer", "minimum": 1, "maximum": 10},
			"completed": {"type": "boolean"},
			"editing":   {"type": "boolean"}
		}
	}
}`

var schema = jsonschema.MustCompileString("impact://actions.schema.json", actionsSchema)

// Encode serializes actions in canonical order. Editing is never written.
// A list that Decode would refuse is refused here too, so a bad row never
// replaces the last good copy.
func Encode(actions []model.Action) ([]byte, error) {
	if actions == nil {
		actions = []model.Action{}
	}
	if err := checkUnique(actions); err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(actions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	if err := validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Decode parses and validates a persisted list. Every failure wraps
// ErrCorrupt. Older files may carry an editing flag; it is dropped.
func Decode(b []byte) ([]model.Action, error) {
	if err := validate(b); err != nil {
		return nil, err
	}

	var actions []model.Action
	if err := json.Unmarshal(b, &actions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := checkUnique(actions); err != nil {
		return nil, err
	}
	for i := range actions {
		actions[i].Editing = false
	}
	if actions == nil {
		actions = []model.Action{}
	}
	return actions, nil
}

func validate(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, firstCause(err))
	}
	return nil
}

func checkUnique(actions []model.Action) error {
	seen := make(map[int64]struct{}, len(actions))
	for _, a := range actions {
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrCorrupt, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}

// firstCause digs out the innermost schema failure, which names the
// offending field instead of the whole document.
func firstCause(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return fmt.Errorf("%s: %s", ve.InstanceLocation, ve.Message)
}
