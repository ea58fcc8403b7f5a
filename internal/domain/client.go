package domain

import (
	"errors"
	"strings"
)

type Client struct {
	ID         int64
	Name       string
	NationalID string
	Phone      string
}

// NewClient creates a new client with required fields
func NewClient(name, nationalID, phone string) *Client {
	return &Client{
		Name:       strings.TrimSpace(name),
		NationalID: strings.TrimSpace(nationalID),
		Phone:      strings.TrimSpace(phone),
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	if strings.TrimSpace(c.NationalID) == "" {
		return errors.New("client national id is required")
	}
	return nil
}

// Matches reports whether the term is a case-insensitive substring
// of the client's name or national id
func (c *Client) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.NationalID), term)
}
