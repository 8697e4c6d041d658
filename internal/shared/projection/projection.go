package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stamp records a write at now; CreatedAt is only set on the first write.
func (m *Metadata) Stamp(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// Projection is a stored entity plus its persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}
