package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/partnerscore/schema"
	"gopkg.in/yaml.v3"
)

// ReadCriteriaYAML decodes a criteria document keyed by metric key.
// Unknown fields are rejected so typos in a hand-edited file surface early.
func ReadCriteriaYAML(r io.Reader) (schema.Criteria, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var criteria schema.Criteria
	if err := decoder.Decode(&criteria); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("criteria file is empty")
		}
		return nil, fmt.Errorf("failed to decode criteria YAML: %w", err)
	}
	if len(criteria) == 0 {
		return nil, errors.New("criteria file is empty")
	}
	return criteria, nil
}

// WriteCriteriaYAML encodes criteria as YAML with two-space indentation.
func WriteCriteriaYAML(w io.Writer, criteria schema.Criteria) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(criteria); err != nil {
		return fmt.Errorf("failed to encode criteria YAML: %w", err)
	}
	return encoder.Close()
}
