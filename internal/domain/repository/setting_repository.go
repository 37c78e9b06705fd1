package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// SettingRepository define el puerto de persistencia para settings clave/valor.
type SettingRepository interface {
	// Get devuelve el valor de la clave o def si no existe.
	Get(key, def string) (string, error)
	// Set crea o actualiza la clave.
	Set(key, value string) error
	All() ([]*entity.Setting, error)
}
