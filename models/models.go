package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PointsPlaceholder is shown in place of a missing score
const PointsPlaceholder = "Tidak tersedia"

// RosterRecord is one student entry returned by the remote roster source
type RosterRecord struct {
	ID     string `json:"id"`     // Unique within one response
	NIM    string `json:"nim"`    // Student identification number
	Nama   string `json:"nama"`   // Display name
	Kelas  string `json:"kelas"`  // Class/section label
	Points Points `json:"points"` // Optional score
}

// Points is an optional score that the source sends as a string, a number or null.
// Numbers keep their literal text.
type Points struct {
	Value string
	Valid bool
}

// UnmarshalJSON accepts a JSON string, number or null
func (p *Points) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Points{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Points{Value: s, Valid: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("points must be a string, number or null: %w", err)
	}
	*p = Points{Value: n.String(), Valid: true}
	return nil
}

// MarshalJSON writes null for a missing score and the literal text otherwise
func (p Points) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// Display returns the literal score, or PointsPlaceholder when it is absent or empty
func (p Points) Display() string {
	if !p.Valid || p.Value == "" {
		return PointsPlaceholder
	}
	return p.Value
}

// Task is one entry of the home screen to-do list
type Task struct {
	Index int    `json:"index"` // Position in the list, used for removal
	Text  string `json:"text"`
}
