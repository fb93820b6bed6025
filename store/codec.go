package store

import "encoding/json"

// DecodeRow maps a store row onto a struct via its json tags.
func DecodeRow(r Row, dst interface{}) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// EncodeRow turns a struct into a row the store accepts. Zero-value
// fields marked omitempty are left out so the store fills defaults.
func EncodeRow(v interface{}) (Row, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var row Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return row, nil
}
