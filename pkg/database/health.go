package database

import (
	"context"
	"time"
)

// HealthStatus reports database connectivity for the /health endpoint.
type HealthStatus struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time_ms"`
}

// Health pings the database and reports its connectivity status.
func (c *Client) Health(ctx context.Context) *HealthStatus {
	start := time.Now()
	if err := c.db.PingContext(ctx); err != nil {
		return &HealthStatus{Status: "unhealthy", ResponseTime: time.Since(start)}
	}
	return &HealthStatus{Status: "healthy", ResponseTime: time.Since(start)}
}
