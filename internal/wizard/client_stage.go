package wizard

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// minSearchLen is the shortest term that triggers a client lookup
const minSearchLen = 3

// ClientResolver finds or registers the client for the session.
type ClientResolver struct {
	w  *Wizard
	gw gateway.API

	candidates []*domain.Client
	loaded     bool
}

// Search returns clients whose name or national id contains the term,
// case-insensitively. Terms shorter than three characters yield no results
// and cause no request.
func (r *ClientResolver) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < minSearchLen {
		return nil, nil
	}
	if !r.loaded {
		clients, err := r.gw.ListClients(ctx)
		if err != nil {
			return nil, err
		}
		r.candidates = clients
		r.loaded = true
	}
	var matches []*domain.Client
	for _, c := range r.candidates {
		if c.Matches(term) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// Select stores the client in the draft. Picking a different client than
// before invalidates the vehicle selection made for the old one.
func (r *ClientResolver) Select(c *domain.Client) {
	previous := r.w.draft.Client
	r.w.draft.Client = c
	if previous != nil && previous.ID != c.ID {
		r.w.clientChanged()
	}
}

// Create registers a new client, selects it, and adds it to the local
// candidate set. Name and national id are required; on failure the stage
// stays active and the error carries the message to show inline.
func (r *ClientResolver) Create(ctx context.Context, name, nationalID, phone string) (*domain.Client, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(nationalID) == "" {
		return nil, errors.New("name and national id are required")
	}
	created, err := r.gw.CreateClient(ctx, domain.NewClient(name, nationalID, phone))
	if err != nil {
		return nil, err
	}
	r.candidates = append(r.candidates, created)
	r.Select(created)
	return created, nil
}
