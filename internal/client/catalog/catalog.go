// Package catalog exposes the public, unauthenticated browsing surface:
// products, categories and promotions.
package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/models"
)

// Client performs read-only catalog calls. Stateless; every call hits the
// server.
type Client struct {
	api *api.Client
}

// New builds a catalog client.
func New(client *api.Client) *Client {
	return &Client{api: client}
}

// Products lists all active products.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.api.Get(ctx, "/productos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches one product by ID.
func (c *Client) Product(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := c.api.Get(ctx, fmt.Sprintf("/productos/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductsByCategory lists active products in the named category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	path := "/productos/categoria/" + url.PathEscape(category)
	if err := c.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.api.Get(ctx, "/categorias", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Category fetches one category by ID.
func (c *Client) Category(ctx context.Context, id int64) (*models.Category, error) {
	var out models.Category
	if err := c.api.Get(ctx, fmt.Sprintf("/categorias/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Promotions lists all promotions (public endpoint).
func (c *Client) Promotions(ctx context.Context) ([]models.Promotion, error) {
	var out []models.Promotion
	if err := c.api.Get(ctx, "/promociones", &out); err != nil {
		return nil, err
	}
	return out, nil
}
