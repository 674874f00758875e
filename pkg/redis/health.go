package redis

import (
	"context"
	"strconv"
	"time"
)

// HealthCheck is the outcome of a redis probe.
type HealthCheck struct {
	Status  HealthStatus
	Details map[string]string
}

// CheckHealth pings the server and reports pool counters.
func (c *Client) CheckHealth(ctx context.Context) HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	details := map[string]string{
		"host":     c.config.Host,
		"port":     strconv.Itoa(c.config.Port),
		"database": strconv.Itoa(c.config.Database),
	}

	start := time.Now()
	if err := c.Ping(ctx); err != nil {
		details["message"] = err.Error()
		return HealthCheck{Status: StatusDown, Details: details}
	}
	details["latency"] = time.Since(start).String()

	if stats := c.Stats(); stats != nil {
		details["total_conns"] = strconv.FormatUint(uint64(stats.TotalConns), 10)
		details["idle_conns"] = strconv.FormatUint(uint64(stats.IdleConns), 10)
		details["timeouts"] = strconv.FormatUint(uint64(stats.Timeouts), 10)
	}

	return HealthCheck{Status: StatusUp, Details: details}
}
