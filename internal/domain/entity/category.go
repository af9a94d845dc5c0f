package entity

import "time"

// Category clasifica medicamentos (ej. genéricos, de marca, fitoterapéuticos).
type Category struct {
	ID        string
	Name      string // único
	Remark    string
	CreatedAt time.Time
}
