package dto

import "encoding/json"

// OptionalString distinguishes the three JSON states of a partial update:
// absent (Set=false), explicit null (Set=true, Value=nil) and a string
// (Set=true, Value non-nil). Absent fields are left untouched; explicit
// nulls clear the column.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// String returns the value or "" when unset/null.
func (o OptionalString) String() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}
