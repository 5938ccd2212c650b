package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const healthTimeout = 5 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type statter interface {
	Stat() *pgxpool.Stat
}

// PoolSnapshot is the slice of pgxpool statistics exposed on /health/db.
type PoolSnapshot struct {
	Total    int32  `json:"total_conns"`
	Idle     int32  `json:"idle_conns"`
	Acquired int32  `json:"acquired_conns"`
	Max      int32  `json:"max_conns"`
	Acquires int64  `json:"acquire_count"`
	WaitTime string `json:"acquire_duration"`
}

type HealthStatus struct {
	Status  string        `json:"status"`
	Latency string        `json:"latency"`
	Error   string        `json:"error,omitempty"`
	Pool    *PoolSnapshot `json:"pool,omitempty"`
}

func snapshot(s *pgxpool.Stat) *PoolSnapshot {
	return &PoolSnapshot{
		Total:    s.TotalConns(),
		Idle:     s.IdleConns(),
		Acquired: s.AcquiredConns(),
		Max:      s.MaxConns(),
		Acquires: s.AcquireCount(),
		WaitTime: s.AcquireDuration().String(),
	}
}

// HealthHandler pings the database and answers 503 when it is unreachable.
func HealthHandler(p Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()

		start := time.Now()
		err := p.Ping(ctx)
		st := HealthStatus{Status: "healthy", Latency: time.Since(start).String()}
		if s, ok := p.(statter); ok {
			st.Pool = snapshot(s.Stat())
		}

		code := http.StatusOK
		if err != nil {
			st.Status = "unhealthy"
			st.Error = err.Error()
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, st)
	}
}
