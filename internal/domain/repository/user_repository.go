package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	FindByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	UpdatePassword(id, passwordHash string) error
}
