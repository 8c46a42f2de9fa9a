package models

import "time"

// ActividadConteo is an activity detail row with its attendance counts. Both
// the database view and the in-process fallback produce this shape.
type ActividadConteo struct {
	ActividadDetalle
	TotalAgentes           int `db:"total_agentes" json:"total_agentes"`
	AsistenciaConfirmada   int `db:"asistencia_confirmada" json:"asistencia_confirmada"`
	AsistenciaNoConfirmada int `db:"asistencia_no_confirmada" json:"asistencia_no_confirmada"`
	AsistenciaPendiente    int `db:"asistencia_pendiente" json:"asistencia_pendiente"`
}

// ActividadResumen adds the derived fields computed at read time.
type ActividadResumen struct {
	ActividadConteo
	AsistenciaPorcentaje float64 `json:"asistencia_porcentaje"`
	DiaSemana            string  `json:"dia_semana"`
	Mes                  string  `json:"mes"`
	Anio                 int     `json:"anio"`
	SemanaDelAnio        int     `json:"semana_del_anio"`
	Estado               string  `json:"estado"`
}

// SystemMetrics is a point-in-time view of the process instrumentation.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	ResumenVista             uint64    `json:"resumen_vista"`
	ResumenCalculada         uint64    `json:"resumen_calculada"`
	StoreWrites              uint64    `json:"store_writes"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
