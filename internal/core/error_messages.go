// Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors they can quote the code to the
// coordination office for faster diagnosis. Messages are in Spanish (the
// product's UI language); logs stay in English.
//
// Codes are grouped by category:
//
//	FILE001 - The uploaded or downloaded bytes are not an xlsx workbook
//	FILE002 - The database URL returned an HTML page (usually a 404)
//	FILE003 - The file is empty
//	FILE004 - No file was attached to the upload
//	FILE005 - The file exceeds the size limit
//
//	ING001 - A search ran before any database was loaded
//	ING002 - The workbook decoded but no sheet produced valid records
//
//	SRCH001 - Search submitted without a folio
//	SRCH002 - PDF export requested for a folio that is not in the database
//
//	REF001 - Reference data (teachers/departments/courses) download failed
//	REF002 - Reference data is malformed CSV
//
//	REG001 - Course selection limit exceeded
//	REG002 - Course already selected
//	REG003 - Schedule conflict between selected courses
//	REG004 - A required registration field is missing
//	REG005 - Unknown course or department ID
//	REG006 - No course selected
//	REG007 - Malformed CURP
//
//	SRV001 - Fallback for unrecognized errors
package core

import (
	"fmt"
	"strings"
)

// UserMessage is a user-facing rendering of a technical error.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly, Spanish)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Support reference code
}

// errorPattern defines a substring to match and its corresponding message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive, matched with
// strings.Contains) to user messages. First match wins, so specific
// patterns come before general ones.
var errorPatterns = []errorPattern{
	// ── Workbook / file errors ──────────────────────────────────────────
	{
		pattern: "html page",
		msg: UserMessage{
			Message: "La URL de la base de datos devolvió una página HTML en lugar de un archivo Excel",
			Action:  "Verifique que la URL apunte al archivo .xlsx directamente (no a una página de error)",
			Code:    "FILE002",
		},
	},
	{
		pattern: "not a valid xlsx",
		msg: UserMessage{
			Message: "El archivo no parece ser un archivo Excel (.xlsx) válido",
			Action:  "Verifique que el archivo sea un .xlsx y no esté dañado",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "El archivo está vacío",
			Action:  "Cargue un archivo Excel con datos",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No se seleccionó ningún archivo",
			Action:  "Seleccione un archivo Excel (.xlsx) para cargar",
			Code:    "FILE004",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "El archivo excede el tamaño máximo permitido",
			Action:  "Divida la base de datos en archivos más pequeños",
			Code:    "FILE005",
		},
	},

	// ── Ingestion errors ────────────────────────────────────────────────
	{
		pattern: "no database loaded",
		msg: UserMessage{
			Message: "Aún no se ha cargado ninguna base de datos",
			Action:  "Cargue el archivo Excel antes de buscar un folio",
			Code:    "ING001",
		},
	},
	{
		pattern: "no valid data rows",
		msg: UserMessage{
			Message: "No se encontraron datos válidos en el archivo",
			Action:  "Revise el panel de depuración para ver la causa de cada hoja omitida",
			Code:    "ING002",
		},
	},

	// ── Search errors ───────────────────────────────────────────────────
	{
		pattern: "empty search query",
		msg: UserMessage{
			Message: "Ingrese el folio de la constancia para verificar su validez",
			Action:  "Escriba un folio y vuelva a buscar",
			Code:    "SRCH001",
		},
	},
	{
		pattern: "folio not found",
		msg: UserMessage{
			Message: "El folio ingresado no fue encontrado en la base de datos",
			Action:  "Verifique el folio e intente de nuevo",
			Code:    "SRCH002",
		},
	},

	// ── Reference data errors ───────────────────────────────────────────
	{
		pattern: "fetch reference data",
		msg: UserMessage{
			Message: "Error al cargar los datos iniciales",
			Action:  "Intente de nuevo en unos momentos",
			Code:    "REF001",
		},
	},
	{
		pattern: "parse reference data",
		msg: UserMessage{
			Message: "Los datos de referencia tienen un formato inválido",
			Action:  "Notifique al departamento de coordinación",
			Code:    "REF002",
		},
	},

	// ── Registration errors ─────────────────────────────────────────────
	{
		pattern: "selection limit",
		msg: UserMessage{
			Message: "No puede registrar más de 3 cursos",
			Action:  "Elimine un curso antes de agregar otro",
			Code:    "REG001",
		},
	},
	{
		pattern: "already selected",
		msg: UserMessage{
			Message: "Este curso ya ha sido agregado",
			Action:  "Seleccione un curso distinto",
			Code:    "REG002",
		},
	},
	{
		pattern: "schedule conflict",
		msg: UserMessage{
			Message: "El curso tiene un conflicto de horario con otro curso seleccionado",
			Action:  "Seleccione un curso en un horario diferente",
			Code:    "REG003",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Falta un campo obligatorio del registro",
			Action:  "Complete nombre, correo y departamento antes de enviar",
			Code:    "REG004",
		},
	},
	{
		pattern: "unknown course",
		msg: UserMessage{
			Message: "Uno de los cursos seleccionados no existe",
			Action:  "Recargue la página e intente de nuevo",
			Code:    "REG005",
		},
	},
	{
		pattern: "unknown department",
		msg: UserMessage{
			Message: "El departamento seleccionado no existe",
			Action:  "Recargue la página e intente de nuevo",
			Code:    "REG005",
		},
	},
	{
		pattern: "invalid curp",
		msg: UserMessage{
			Message: "El CURP no tiene un formato válido",
			Action:  "Verifique los 18 caracteres del CURP o deje el campo vacío",
			Code:    "REG007",
		},
	},
	{
		pattern: "no courses selected",
		msg: UserMessage{
			Message: "Debe seleccionar al menos un curso",
			Action:  "Agregue un curso antes de enviar el registro",
			Code:    "REG006",
		},
	},
}

// defaultMessage is used when no pattern matches.
var defaultMessage = UserMessage{
	Message: "Ocurrió un error inesperado",
	Action:  "Intente de nuevo; si el problema persiste, contacte a coordinación con el código",
	Code:    "SRV001",
}

// MapError translates a technical error into a user-facing message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a display string: "Message (Código: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}
