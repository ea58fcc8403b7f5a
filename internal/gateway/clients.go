package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mvalarezo/taller/internal/domain"
)

type clientPayload struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone,omitempty"`
}

func (p *clientPayload) toDomain() *domain.Client {
	return &domain.Client{
		ID:         p.ID,
		Name:       p.Name,
		NationalID: p.NationalID,
		Phone:      p.Phone,
	}
}

func clientToPayload(c *domain.Client) *clientPayload {
	return &clientPayload{
		Name:       c.Name,
		NationalID: c.NationalID,
		Phone:      c.Phone,
	}
}

// ListClients retrieves all registered clients
func (c *Client) ListClients(ctx context.Context) ([]*domain.Client, error) {
	var payloads []*clientPayload
	if err := c.do(ctx, http.MethodGet, "/clients", nil, &payloads); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	clients := make([]*domain.Client, len(payloads))
	for i, p := range payloads {
		clients[i] = p.toDomain()
	}
	return clients, nil
}

// GetClient retrieves one client by id
func (c *Client) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	var payload clientPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clients/%d", id), nil, &payload); err != nil {
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	return payload.toDomain(), nil
}

// CreateClient registers a new client and returns it with its assigned id
func (c *Client) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := client.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client: %w", err)
	}
	var payload clientPayload
	if err := c.do(ctx, http.MethodPost, "/clients", clientToPayload(client), &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// UpdateClient updates an existing client
func (c *Client) UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := client.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client: %w", err)
	}
	var payload clientPayload
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/clients/%d", client.ID), clientToPayload(client), &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}
