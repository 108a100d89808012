package sharedarray

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON serializes the visible elements as a JSON array.
func (a *Array[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.serializable())
}

// UnmarshalJSON unserializes a JSON array. A detached array gets a new store,
// the tail of a store has its elements replaced.
func (a *Array[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	return a.replace("unmarshal json", values)
}

// MarshalYAML serializes the visible elements as a YAML sequence.
func (a *Array[T]) MarshalYAML() (interface{}, error) {
	return a.serializable(), nil
}

// UnmarshalYAML unserializes a YAML sequence. A detached array gets a new
// store, the tail of a store has its elements replaced.
func (a *Array[T]) UnmarshalYAML(node *yaml.Node) error {
	var values []T
	if err := node.Decode(&values); err != nil {
		return err
	}
	return a.replace("unmarshal yaml", values)
}

func (a *Array[T]) serializable() []T {
	data := a.Data()
	if data == nil {
		data = []T{}
	}
	return data
}

func (a *Array[T]) replace(op string, values []T) error {
	if a.store == nil {
		*a = *From(values)
		return nil
	}

	if err := a.checkMutation(op); err != nil {
		return err
	}
	if err := a.Resize(len(values)); err != nil {
		return fmt.Errorf("sharedarray: %s: %w", op, err)
	}
	copy(a.Data(), values)
	return nil
}
