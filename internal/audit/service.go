package audit

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/entities"
)

// Origins of a mutation.
const (
	OriginUI   = "ui"
	OriginAPI  = "api"
	OriginCLI  = "cli"
	OriginDemo = "demo" // seeded by the server at demo startup
)

const maxErrorLength = 500

// Service records add and remove events. A nil *Service and a Service
// without a directory are both valid and record nothing.
type Service struct {
	auditor *Auditor
	logger  *zap.Logger
	now     func() time.Time
}

// NewService returns nil when dir is empty, which disables the journal.
func NewService(dir string, logger *zap.Logger) *Service {
	if dir == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		auditor: NewAuditor(dir),
		logger:  logger,
		now:     time.Now,
	}
}

// Entry describes the context of a mutation.
type Entry struct {
	Origin    string
	RequestID string
	Index     int
	Book      entities.Book
	Err       error
}

// LogAdd records an add attempt.
func (s *Service) LogAdd(e Entry) {
	s.log(entities.AuditActionAdd, e)
}

// LogRemove records a remove.
func (s *Service) LogRemove(e Entry) {
	s.log(entities.AuditActionRemove, e)
}

func (s *Service) log(action entities.AuditAction, e Entry) {
	if s == nil {
		return
	}

	event := entities.AuditEvent{
		ID:        uuid.NewString(),
		Action:    action,
		Origin:    e.Origin,
		Index:     e.Index,
		Book:      e.Book,
		Status:    entities.AuditStatusSuccess,
		RequestID: e.RequestID,
		CreatedAt: s.now().UTC(),
	}
	if e.Err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(e.Err.Error(), maxErrorLength)
	}

	// The journal never blocks a mutation.
	if _, err := s.auditor.SaveJSON(event.ID, event); err != nil {
		s.logger.Warn("Failed to write audit event",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
