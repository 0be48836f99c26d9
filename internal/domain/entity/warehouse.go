package entity

import "time"

// Warehouse representa una bodega o punto de almacenamiento (barra, cocina, bodega central).
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
