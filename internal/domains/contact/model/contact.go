package model

import (
	"strings"
	"time"
)

// Contact represents one submitted contact record
type Contact struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`

	// Timestamps
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize trims surrounding whitespace from name, phone and message.
// Email is validated as submitted.
func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Message = strings.TrimSpace(c.Message)
}

// Stamp sets both timestamps to the same instant
func (c *Contact) Stamp(now time.Time) {
	ts := Timestamp(now)
	c.CreatedAt = ts
	c.UpdatedAt = ts
}

// Timestamp converts t to the precision the stores keep (UTC, milliseconds)
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// NewRecord copies c, normalizes and validates the copy and stamps it with
// now. The caller assigns the ID. c itself is never modified.
func NewRecord(c *Contact, now time.Time) (*Contact, error) {
	if c == nil {
		c = &Contact{}
	}

	record := *c
	record.ID = ""
	record.Normalize()

	if err := record.Validate(); err != nil {
		return nil, err
	}

	record.Stamp(now)
	return &record, nil
}
