// Package docs registra en swag el documento OpenAPI de la API (swagger.json).
// El mismo archivo lo sirve gofiber/contrib/swagger en /docs.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo documento registrado; la plantilla es swagger.json sin marcadores.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Kardex API",
	Description:      "Kardex de productos: movimientos de entrada y salida con saldo por línea y totales.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerJSON,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
