// Package orders covers the authenticated client-side order operations:
// placing an order from the current cart and listing order history.
package orders

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/oldschooltees/tienda/internal/apierr"
	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/models"
)

// Client performs the client order calls.
type Client struct {
	api      *api.Client
	validate *validator.Validate
}

// New builds an orders client.
func New(client *api.Client) *Client {
	return &Client{api: client, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Create places an order from the server-side cart via POST /pedidos/crear.
// The caller clears the local cart snapshot after success; the server has
// already consumed the cart.
func (c *Client) Create(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, apierr.Validation("shipping address and payment method are required")
	}
	var out models.Order
	if err := c.api.Post(ctx, "/pedidos/crear", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mine lists the authenticated user's order history.
func (c *Client) Mine(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.api.Get(ctx, "/pedidos/mis-pedidos", &out); err != nil {
		return nil, err
	}
	return out, nil
}
