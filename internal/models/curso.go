package models

import "strings"

// Curso is a training course activities are scheduled for.
type Curso struct {
	ID          int64   `db:"id" json:"id"`
	Nombre      string  `db:"nombre" json:"nombre"`
	Descripcion *string `db:"descripcion" json:"descripcion"`
}

// CursoPatch carries a partial course update.
type CursoPatch struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=1,max=150"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=1000"`
}

// Apply copies the supplied fields onto c.
func (p CursoPatch) Apply(c *Curso) {
	if p.Nombre != nil {
		c.Nombre = strings.TrimSpace(*p.Nombre)
	}
	if p.Descripcion != nil {
		c.Descripcion = NullableText(*p.Descripcion)
	}
}

// Turno is a static shift with optional "HH:MM" bounds.
type Turno struct {
	ID         int64   `db:"id" json:"id"`
	Nombre     string  `db:"nombre" json:"nombre"`
	HoraInicio *string `db:"hora_inicio" json:"hora_inicio"`
	HoraFin    *string `db:"hora_fin" json:"hora_fin"`
}
