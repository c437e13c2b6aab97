// Package monitor exposes the operational endpoints of the backend: health
// status, runtime metrics and the application log, plus a periodic refresh
// loop for the logs dashboard.
package monitor

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/models"
)

// Client performs the monitoring calls.
type Client struct {
	api *api.Client
	log *zap.Logger
}

// New builds a monitoring client.
func New(client *api.Client, log *zap.Logger) *Client {
	return &Client{api: client, log: log}
}

// Status fetches the health summary from GET /health/status.
func (c *Client) Status(ctx context.Context) (*models.SystemStatus, error) {
	var out models.SystemStatus
	if err := c.api.Get(ctx, "/health/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Metrics fetches the metrics snapshot from GET /health/metrics.
func (c *Client) Metrics(ctx context.Context) (*models.SystemMetrics, error) {
	var out models.SystemMetrics
	if err := c.api.Get(ctx, "/health/metrics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentLogs fetches the latest log lines from GET /admin/logs/recent.
func (c *Client) RecentLogs(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.api.Get(ctx, "/admin/logs/recent", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadLogs streams the full log file from GET /admin/logs/download
// into w and returns the number of bytes written.
func (c *Client) DownloadLogs(ctx context.Context, w io.Writer) (int64, error) {
	return c.api.Download(ctx, "/admin/logs/download", w)
}

// Snapshot is one round of dashboard data.
type Snapshot struct {
	Status  *models.SystemStatus
	Metrics *models.SystemMetrics
	Logs    []string
}

// AutoRefresh runs fn with a fresh Snapshot every interval until ctx is
// cancelled. A failed round is logged and skipped; the loop keeps going.
func (c *Client) AutoRefresh(ctx context.Context, interval time.Duration, fn func(Snapshot)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap, err := c.collect(ctx)
				if err != nil {
					c.log.Warn("monitoring refresh failed", zap.Error(err))
					continue
				}
				fn(snap)
			}
		}
	}()
}

func (c *Client) collect(ctx context.Context) (Snapshot, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	metrics, err := c.Metrics(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	logs, err := c.RecentLogs(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Status: status, Metrics: metrics, Logs: logs}, nil
}
