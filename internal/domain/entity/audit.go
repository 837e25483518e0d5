package entity

import "time"

// Audit columnas de auditoría que cada entidad compone explícitamente.
// CreatedByID/UpdatedByID son nil cuando la acción no tiene actor (registro público, seed).
type Audit struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedByID *int64
	UpdatedByID *int64
}

// StampCreated marca creación y última modificación con el mismo actor.
func (a *Audit) StampCreated(actorID *int64, now time.Time) {
	a.CreatedAt = now
	a.UpdatedAt = now
	a.CreatedByID = actorID
	a.UpdatedByID = actorID
}

// StampUpdated marca la última modificación.
func (a *Audit) StampUpdated(actorID *int64, now time.Time) {
	a.UpdatedAt = now
	a.UpdatedByID = actorID
}
