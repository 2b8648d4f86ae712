package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// userDTO is the persisted shape of a user. LegacyID accepts files written
// with the "id_" key.
type userDTO struct {
	ID       uuid.UUID  `json:"id"`
	LegacyID *uuid.UUID `json:"id_,omitempty"`
	Name     string     `json:"name"`
	Tasks    []taskDTO  `json:"tasks"`
}

type taskDTO struct {
	ID          uuid.UUID     `json:"id"`
	LegacyID    *uuid.UUID    `json:"id_,omitempty"`
	Name        string        `json:"name"`
	IsComplete  bool          `json:"is_complete"`
	Description *string       `json:"description"`
	Deadline    *timestamp    `json:"deadline"`
	Intervals   []intervalDTO `json:"intervals"`
}

type intervalDTO struct {
	TaskID uuid.UUID  `json:"task_id"`
	Start  *timestamp `json:"start"`
	End    *timestamp `json:"end"`
}

// timestamp writes RFC 3339 and reads RFC 3339 or zone-less ISO-8601,
// treating the latter as UTC.
type timestamp struct {
	time.Time
}

// zonelessLayouts are tried after RFC 3339 fails.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (ts timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Format(time.RFC3339Nano))
}

func (ts *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// decodeDocument parses the whole file. Each value is either a user object or
// a JSON string holding an encoded user object.
func decodeDocument(data []byte) (map[string]userDTO, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	users := make(map[string]userDTO, len(raw))
	for key, value := range raw {
		dto, err := decodeUser(value)
		if err != nil {
			return nil, fmt.Errorf("decoding user %q: %w", key, err)
		}
		users[key] = dto
	}
	return users, nil
}

func decodeUser(value json.RawMessage) (userDTO, error) {
	value = bytes.TrimSpace(value)
	if len(value) > 0 && value[0] == '"' {
		var encoded string
		if err := json.Unmarshal(value, &encoded); err != nil {
			return userDTO{}, err
		}
		value = []byte(encoded)
	}

	var dto userDTO
	if err := json.Unmarshal(value, &dto); err != nil {
		return userDTO{}, err
	}
	return dto, nil
}

func encodeDocument(users map[string]userDTO) ([]byte, error) {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return append(data, '\n'), nil
}
