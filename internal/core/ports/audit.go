package ports

import "github.com/assignhub/assignment-api/internal/core/domain"

// AuditRecorder accepts audit entries for asynchronous persistence. Record
// must not block the request path beyond queue backpressure.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
