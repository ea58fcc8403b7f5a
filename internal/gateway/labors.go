package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mvalarezo/taller/internal/domain"
)

type laborPayload struct {
	ID            int64    `json:"id,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	StandardPrice apiFloat `json:"standard_price"`
}

func (p *laborPayload) toDomain() *domain.Labor {
	return &domain.Labor{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		StandardPrice: float64(p.StandardPrice),
	}
}

func laborToPayload(l *domain.Labor) *laborPayload {
	return &laborPayload{
		Name:          l.Name,
		Description:   l.Description,
		StandardPrice: apiFloat(l.StandardPrice),
	}
}

// ListLabors retrieves the labor catalog
func (c *Client) ListLabors(ctx context.Context) ([]*domain.Labor, error) {
	var payloads []*laborPayload
	if err := c.do(ctx, http.MethodGet, "/labors", nil, &payloads); err != nil {
		return nil, fmt.Errorf("list labors: %w", err)
	}
	labors := make([]*domain.Labor, len(payloads))
	for i, p := range payloads {
		labors[i] = p.toDomain()
	}
	return labors, nil
}

// CreateLabor adds a labor entry to the catalog and returns it with its
// assigned id. The maintenance composer relies on this to realize ad-hoc
// work lines right before committing a record.
func (c *Client) CreateLabor(ctx context.Context, l *domain.Labor) (*domain.Labor, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid labor: %w", err)
	}
	var payload laborPayload
	if err := c.do(ctx, http.MethodPost, "/labors", laborToPayload(l), &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// UpdateLabor updates an existing labor catalog entry
func (c *Client) UpdateLabor(ctx context.Context, l *domain.Labor) (*domain.Labor, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid labor: %w", err)
	}
	var payload laborPayload
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/labors/%d", l.ID), laborToPayload(l), &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// DeleteLabor removes a labor entry from the catalog
func (c *Client) DeleteLabor(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/labors/%d", id), nil, nil)
}
