package usecase

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("registro no encontrado")
	ErrValidation         = errors.New("datos inválidos")
	ErrInvalidAction      = errors.New("acción masiva inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountDisabled    = errors.New("la cuenta está desactivada")
	ErrStaffExists        = errors.New("ya existe un usuario con ese correo")
)

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// storeError maps a repository error onto the use case errors.
func storeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
