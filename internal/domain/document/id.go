package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ID identifies an entity. Older documents carry timestamp-derived numeric
// ids, newer ones carry strings; both decode into ID and numeric ids are
// written back as JSON numbers.
type ID string

// AdminID is the rater/reporter id used for the administrator.
const AdminID ID = "admin"

func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) IsAdmin() bool {
	return id == AdminID
}

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) numeric() bool {
	if id == "" {
		return false
	}
	if _, err := strconv.ParseFloat(string(id), 64); err != nil {
		return false
	}
	return json.Valid([]byte(id))
}

// IDPtr is a convenience for optional references such as assignedTo.
func IDPtr(id ID) *ID {
	return &id
}

// SameID reports whether an optional reference points at id.
func SameID(ref *ID, id ID) bool {
	return ref != nil && *ref == id
}
