package models

import "strings"

// Agente represents a tracked person. NIP is the stable personnel code and
// never changes after creation.
type Agente struct {
	NIP            string  `db:"nip" json:"nip"`
	Nombre         string  `db:"nombre" json:"nombre"`
	Apellido1      string  `db:"apellido1" json:"apellido1"`
	Apellido2      *string `db:"apellido2" json:"apellido2"`
	Seccion        *string `db:"seccion" json:"seccion"`
	Grupo          *string `db:"grupo" json:"grupo"`
	Activo         bool    `db:"activo" json:"activo"`
	EsMonitor      bool    `db:"es_monitor" json:"monitor"`
	NombreCompleto string  `db:"-" json:"nombre_completo"`
}

// JoinNombre builds "nombre apellido1 [apellido2]".
func JoinNombre(nombre, apellido1 string, apellido2 *string) string {
	parts := []string{strings.TrimSpace(nombre), strings.TrimSpace(apellido1)}
	if apellido2 != nil && strings.TrimSpace(*apellido2) != "" {
		parts = append(parts, strings.TrimSpace(*apellido2))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// CompletarNombre refreshes the derived full-name field.
func (a *Agente) CompletarNombre() {
	a.NombreCompleto = JoinNombre(a.Nombre, a.Apellido1, a.Apellido2)
}

// AgentePatch carries a partial update. Nil fields are left untouched; an
// empty string on a nullable column clears it.
type AgentePatch struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Apellido1 *string `json:"apellido1" validate:"omitempty,min=1,max=100"`
	Apellido2 *string `json:"apellido2" validate:"omitempty,max=100"`
	Seccion   *string `json:"seccion" validate:"omitempty,max=100"`
	Grupo     *string `json:"grupo" validate:"omitempty,max=100"`
	Activo    *bool   `json:"activo"`
	EsMonitor *bool   `json:"monitor"`
}

// Empty reports whether the patch changes nothing.
func (p AgentePatch) Empty() bool {
	return p.Nombre == nil && p.Apellido1 == nil && p.Apellido2 == nil &&
		p.Seccion == nil && p.Grupo == nil && p.Activo == nil && p.EsMonitor == nil
}

// Apply copies the supplied fields onto a.
func (p AgentePatch) Apply(a *Agente) {
	if p.Nombre != nil {
		a.Nombre = strings.TrimSpace(*p.Nombre)
	}
	if p.Apellido1 != nil {
		a.Apellido1 = strings.TrimSpace(*p.Apellido1)
	}
	if p.Apellido2 != nil {
		a.Apellido2 = NullableText(*p.Apellido2)
	}
	if p.Seccion != nil {
		a.Seccion = NullableText(*p.Seccion)
	}
	if p.Grupo != nil {
		a.Grupo = NullableText(*p.Grupo)
	}
	if p.Activo != nil {
		a.Activo = *p.Activo
	}
	if p.EsMonitor != nil {
		a.EsMonitor = *p.EsMonitor
	}
	a.CompletarNombre()
}

// AgenteFilter narrows agente listings. Blank text fields and nil flags do
// not filter.
type AgenteFilter struct {
	Seccion string
	Grupo   string
	Search  string
	Activo  *bool
	Monitor *bool
}

// NullableText trims s and maps the empty string to nil.
func NullableText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// TextOrEmpty dereferences s, returning "" for nil.
func TextOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
