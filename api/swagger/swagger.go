package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Agentes Admin API",
        "description": "REST facade over agentes, actividades, cursos, turnos and attendance.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Agentes",
            "description": "Personnel records"
        },
        {
            "name": "Monitores",
            "description": "Instructor flag management"
        },
        {
            "name": "Catalogo",
            "description": "Courses and shifts"
        },
        {
            "name": "Actividades",
            "description": "Scheduled training sessions"
        },
        {
            "name": "Asistencia",
            "description": "Assignments and attendance"
        },
        {
            "name": "Resumen",
            "description": "Aggregated reports and exports"
        },
        {
            "name": "System",
            "description": "Health and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Store unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Process metrics snapshot",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/agentes": {
            "get": {
                "tags": [
                    "Agentes"
                ],
                "summary": "List agentes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "seccion",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "grupo",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "activo",
                        "in": "query",
                        "type": "boolean"
                    },
                    {
                        "name": "monitor",
                        "in": "query",
                        "type": "boolean"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Agentes"
                ],
                "summary": "Create agente",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateAgenteRequest"
                        }
                    }
                ]
            }
        },
        "/agentes/{nip}": {
            "get": {
                "tags": [
                    "Agentes"
                ],
                "summary": "Get agente",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "nip",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            },
            "put": {
                "tags": [
                    "Agentes"
                ],
                "summary": "Partially update agente",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "nip",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AgentePatch"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Agentes"
                ],
                "summary": "Delete agente and its assignments",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "nip",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/monitores": {
            "get": {
                "tags": [
                    "Monitores"
                ],
                "summary": "List monitors",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/monitores/{nip}": {
            "put": {
                "tags": [
                    "Monitores"
                ],
                "summary": "Promote agente to monitor",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "nip",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Monitores"
                ],
                "summary": "Remove monitor flag",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "nip",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/cursos": {
            "get": {
                "tags": [
                    "Catalogo"
                ],
                "summary": "List cursos",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Catalogo"
                ],
                "summary": "Create curso",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateCursoRequest"
                        }
                    }
                ]
            }
        },
        "/cursos/{id}": {
            "get": {
                "tags": [
                    "Catalogo"
                ],
                "summary": "Get curso",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ]
            },
            "put": {
                "tags": [
                    "Catalogo"
                ],
                "summary": "Update curso",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CursoPatch"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Catalogo"
                ],
                "summary": "Delete unused curso",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ]
            }
        },
        "/turnos": {
            "get": {
                "tags": [
                    "Catalogo"
                ],
                "summary": "List turnos",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/actividades": {
            "get": {
                "tags": [
                    "Actividades"
                ],
                "summary": "List actividades",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Actividades"
                ],
                "summary": "Create actividad",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateActividadRequest"
                        }
                    }
                ]
            }
        },
        "/actividades/{id}": {
            "get": {
                "tags": [
                    "Actividades"
                ],
                "summary": "Get actividad",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ]
            },
            "put": {
                "tags": [
                    "Actividades"
                ],
                "summary": "Partially update actividad",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ActividadPatch"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Actividades"
                ],
                "summary": "Delete actividad and its assignments",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ]
            }
        },
        "/actividades/{id}/agentes": {
            "get": {
                "tags": [
                    "Asistencia"
                ],
                "summary": "List agentes assigned to an actividad",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ]
            },
            "post": {
                "tags": [
                    "Asistencia"
                ],
                "summary": "Assign agente",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AsignarAgenteRequest"
                        }
                    }
                ]
            }
        },
        "/actividades/{id}/agentes/{nip}": {
            "delete": {
                "tags": [
                    "Asistencia"
                ],
                "summary": "Unassign agente",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "nip",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/actividades/{id}/agentes/{nip}/asistencia": {
            "put": {
                "tags": [
                    "Asistencia"
                ],
                "summary": "Record attendance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    },
                    {
                        "name": "nip",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AsistenciaRequest"
                        }
                    }
                ]
            }
        },
        "/agentes_por_actividad/{id}": {
            "get": {
                "tags": [
                    "Asistencia"
                ],
                "summary": "List agentes assigned to an actividad (legacy path)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true
                    }
                ]
            }
        },
        "/actualizar_asistencia": {
            "post": {
                "tags": [
                    "Asistencia"
                ],
                "summary": "Record attendance (legacy payload)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ActualizarAsistenciaRequest"
                        }
                    }
                ]
            }
        },
        "/resumen": {
            "get": {
                "tags": [
                    "Resumen"
                ],
                "summary": "Aggregated activity rows",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "desde",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "hasta",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "curso",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "turno",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "estado",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string"
                    }
                ]
            }
        },
        "/resumen/export": {
            "get": {
                "tags": [
                    "Resumen"
                ],
                "summary": "Export the filtered report",
                "produces": [
                    "text/csv",
                    "application/pdf",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "parameters": [
                    {
                        "name": "desde",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "hasta",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "curso",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "turno",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "estado",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf",
                            "xlsx"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File"
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": [
                    "Resumen"
                ],
                "summary": "Dashboard metrics and chart series",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "desde",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "hasta",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "curso",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "turno",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "estado",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string"
                    }
                ]
            }
        }
    },
    "definitions": {
        "CreateAgenteRequest": {
            "type": "object",
            "properties": {
                "nip": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                },
                "apellido1": {
                    "type": "string"
                },
                "apellido2": {
                    "type": "string"
                },
                "seccion": {
                    "type": "string"
                },
                "grupo": {
                    "type": "string"
                },
                "activo": {
                    "type": "boolean"
                },
                "monitor": {
                    "type": "boolean"
                }
            },
            "required": [
                "nip",
                "nombre",
                "apellido1"
            ]
        },
        "AgentePatch": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "apellido1": {
                    "type": "string"
                },
                "apellido2": {
                    "type": "string"
                },
                "seccion": {
                    "type": "string"
                },
                "grupo": {
                    "type": "string"
                },
                "activo": {
                    "type": "boolean"
                },
                "monitor": {
                    "type": "boolean"
                }
            }
        },
        "CreateCursoRequest": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                }
            },
            "required": [
                "nombre"
            ]
        },
        "CursoPatch": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                }
            }
        },
        "CreateActividadRequest": {
            "type": "object",
            "properties": {
                "fecha": {
                    "type": "string",
                    "format": "date"
                },
                "turno_id": {
                    "type": "integer"
                },
                "curso_id": {
                    "type": "integer"
                },
                "monitor_nip": {
                    "type": "string"
                },
                "notas": {
                    "type": "string"
                }
            },
            "required": [
                "fecha",
                "turno_id",
                "curso_id"
            ]
        },
        "ActividadPatch": {
            "type": "object",
            "properties": {
                "fecha": {
                    "type": "string",
                    "format": "date"
                },
                "turno_id": {
                    "type": "integer"
                },
                "curso_id": {
                    "type": "integer"
                },
                "monitor_nip": {
                    "type": "string"
                },
                "notas": {
                    "type": "string"
                }
            }
        },
        "AsignarAgenteRequest": {
            "type": "object",
            "properties": {
                "nip": {
                    "type": "string"
                }
            },
            "required": [
                "nip"
            ]
        },
        "AsistenciaRequest": {
            "type": "object",
            "properties": {
                "asistencia": {
                    "type": "boolean",
                    "x-nullable": true
                }
            }
        },
        "ActualizarAsistenciaRequest": {
            "type": "object",
            "properties": {
                "agente_nip": {
                    "type": "string"
                },
                "actividad_id": {
                    "type": "integer"
                },
                "asistencia": {
                    "type": "integer",
                    "enum": [
                        0,
                        1
                    ],
                    "x-nullable": true
                }
            },
            "required": [
                "agente_nip",
                "actividad_id"
            ]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "detail": {
                    "type": "string"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
