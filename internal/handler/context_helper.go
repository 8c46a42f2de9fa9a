package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/agentes-admin/internal/models"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return id, nil
}

func boolQuery(c *gin.Context, name string) *bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "true", "1", "si", "sí":
		v := true
		return &v
	case "false", "0", "no":
		v := false
		return &v
	}
	return nil
}

func agenteFilterFromQuery(c *gin.Context) models.AgenteFilter {
	return models.AgenteFilter{
		Seccion: c.Query("seccion"),
		Grupo:   c.Query("grupo"),
		Search:  c.Query("q"),
		Activo:  boolQuery(c, "activo"),
		Monitor: boolQuery(c, "monitor"),
	}
}

func actividadFilterFromQuery(c *gin.Context) (models.ActividadFilter, error) {
	filter := models.ActividadFilter{
		Curso:  c.Query("curso"),
		Turno:  c.Query("turno"),
		Estado: c.Query("estado"),
		Search: c.Query("q"),
	}
	for name, dst := range map[string]**models.Date{"desde": &filter.Desde, "hasta": &filter.Hasta} {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, name+" must use YYYY-MM-DD")
		}
		*dst = &d
	}
	return filter, nil
}

func bindError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body")
}
