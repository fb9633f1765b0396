package usecase

import (
	"context"

	"portfolio-backend/internal/domain"
)

// Component states reported by the health probe
const (
	StatusOK            = "ok"
	StatusUnavailable   = "unavailable"
	StatusDisabled      = "disabled"
	StatusConfigured    = "configured"
	StatusNotConfigured = "not_configured"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger reports whether an optional dependency answers; a nil Pinger means the dependency is off
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	mailer    domain.Mailer
	pingRedis Pinger
}

func NewHealthUsecase(mailer domain.Mailer, pingRedis Pinger) HealthUsecase {
	return &healthUsecase{mailer: mailer, pingRedis: pingRedis}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"redis": StatusDisabled,
		"email": StatusNotConfigured,
	}
	if u.pingRedis != nil {
		if err := u.pingRedis(ctx); err != nil {
			status["redis"] = StatusUnavailable
		} else {
			status["redis"] = StatusOK
		}
	}
	if u.mailer != nil && u.mailer.IsConfigured() {
		status["email"] = StatusConfigured
	}
	return status
}
