package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mvalarezo/taller/internal/domain"
)

type partPayload struct {
	ID        int64    `json:"id,omitempty"`
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	UnitPrice apiFloat `json:"unit_price"`
	StockQty  int      `json:"stock_qty"`
}

func (p *partPayload) toDomain() *domain.Part {
	return &domain.Part{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		UnitPrice: float64(p.UnitPrice),
		StockQty:  p.StockQty,
	}
}

func partToPayload(p *domain.Part) *partPayload {
	return &partPayload{
		Code:      p.Code,
		Name:      p.Name,
		UnitPrice: apiFloat(p.UnitPrice),
		StockQty:  p.StockQty,
	}
}

// ListParts retrieves the part inventory catalog
func (c *Client) ListParts(ctx context.Context) ([]*domain.Part, error) {
	var payloads []*partPayload
	if err := c.do(ctx, http.MethodGet, "/parts", nil, &payloads); err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	parts := make([]*domain.Part, len(payloads))
	for i, p := range payloads {
		parts[i] = p.toDomain()
	}
	return parts, nil
}

// CreatePart adds a part to the inventory catalog
func (c *Client) CreatePart(ctx context.Context, p *domain.Part) (*domain.Part, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid part: %w", err)
	}
	var payload partPayload
	if err := c.do(ctx, http.MethodPost, "/parts", partToPayload(p), &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// UpdatePart updates an existing catalog part
func (c *Client) UpdatePart(ctx context.Context, p *domain.Part) (*domain.Part, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid part: %w", err)
	}
	var payload partPayload
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/parts/%d", p.ID), partToPayload(p), &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// DeletePart removes a part from the catalog
func (c *Client) DeletePart(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/parts/%d", id), nil, nil)
}
