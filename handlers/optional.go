package handlers

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a field that is absent from a partial-update
// payload from one explicitly set to null: UnmarshalJSON only runs for
// keys present in the payload, so Set stays false for omitted fields.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}
