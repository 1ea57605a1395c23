package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolHealth is the body of the /health/db response: a liveness verdict
// plus a snapshot of the connection pool.
type PoolHealth struct {
	Status        string `json:"status"`
	PingMillis    int64  `json:"ping_ms"`
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
	EmptyAcquires int64  `json:"empty_acquire_count"`
	Error         string `json:"error,omitempty"`
}

func snapshotPool(pool *pgxpool.Pool) PoolHealth {
	stat := pool.Stat()
	return PoolHealth{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
		EmptyAcquires: stat.EmptyAcquireCount(),
	}
}

// healthResult fills in the verdict fields and picks the HTTP status.
func healthResult(h PoolHealth, pingErr error) (int, PoolHealth) {
	if pingErr != nil {
		h.Status = "unhealthy"
		h.Error = pingErr.Error()
		return http.StatusServiceUnavailable, h
	}
	h.Status = "healthy"
	return http.StatusOK, h
}

// HealthHandler pings the database and reports pool statistics, with ping
// latency, for the database health endpoint.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		start := time.Now()
		pingErr := pool.Ping(ctx)

		h := snapshotPool(pool)
		h.PingMillis = time.Since(start).Milliseconds()

		code, body := healthResult(h, pingErr)
		return c.JSON(code, body)
	}
}
