package contract

import "encoding/json"

// Optional distinguishes an absent JSON field from an explicit null in
// partial-update requests. An absent field leaves Set false; "field": null
// sets Set with a nil Value. Needed wherever null is a meaningful write,
// like detaching a book from its parent.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
