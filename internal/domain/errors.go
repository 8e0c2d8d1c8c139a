package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicateName        = errors.New("nombre o código duplicado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrReferentialIntegrity = errors.New("no se puede eliminar: existen registros que lo referencian")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrUnauthenticated      = errors.New("no autenticado")
	ErrForbidden            = errors.New("acceso denegado")
)
