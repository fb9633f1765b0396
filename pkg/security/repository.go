package security

import (
	"context"
	"encoding/json"
	"fmt"
	"net/netip"

	"github.com/jackc/pgx/v5/pgconn"
)

// CreateTableSQL creates the security_events table when it does not exist yet
const CreateTableSQL = `
	CREATE TABLE IF NOT EXISTS security_events (
		id            BIGSERIAL PRIMARY KEY,
		event_type    TEXT NOT NULL,
		severity      TEXT NOT NULL,
		service       TEXT NOT NULL,
		environment   TEXT NOT NULL,
		level         TEXT NOT NULL,
		subject_type  TEXT,
		subject_value TEXT,
		ip_address    INET,
		user_agent    TEXT,
		request_id    TEXT,
		details       JSONB,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

const insertEventSQL = `
	INSERT INTO security_events (
		event_type, severity, service, environment, level,
		subject_type, subject_value, ip_address, user_agent,
		request_id, details, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// Execer is the part of *pgxpool.Pool the repository uses
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SecurityEventRepository persists contact pipeline security events to Postgres
type SecurityEventRepository struct {
	db Execer
}

// NewSecurityEventRepository creates a new repository for security events
func NewSecurityEventRepository(db Execer) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

// EnsureSchema creates the backing table if needed
func (r *SecurityEventRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, CreateTableSQL); err != nil {
		return fmt.Errorf("failed to create security_events table: %w", err)
	}
	return nil
}

// PersistEvent inserts one event. Unparseable IPs are stored as NULL.
func (r *SecurityEventRepository) PersistEvent(ctx context.Context, event SecurityEvent) error {
	var details []byte
	if len(event.Details) > 0 {
		b, err := json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("failed to encode event details: %w", err)
		}
		details = b
	}

	var ip *string
	if addr, err := netip.ParseAddr(event.IP); err == nil {
		s := addr.String()
		ip = &s
	}

	_, err := r.db.Exec(ctx, insertEventSQL,
		string(event.Event),
		string(GetSeverity(event.Event)),
		event.Service,
		event.Environment,
		event.Level,
		event.SubjectType,
		event.SubjectValue,
		ip,
		event.UserAgent,
		event.RequestID,
		details,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist security event: %w", err)
	}
	return nil
}

// CreatePersistFunc creates a persist function for the SecurityLogger
func (r *SecurityEventRepository) CreatePersistFunc() func(context.Context, SecurityEvent) error {
	return r.PersistEvent
}
