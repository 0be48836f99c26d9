package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de una mesa.
const (
	TableStatusNormal    = "normal"
	TableStatusFacturado = "facturado"
	TableStatusAnulado   = "anulado"
)

// Estados de una reserva.
const (
	ReservationActive    = "active"
	ReservationCancelled = "cancelled"
)

// Zone agrupa mesas (salón, terraza, barra).
type Zone struct {
	Code string
	Name string
}

// Table mesa física.
type Table struct {
	Code     string
	ZoneCode string
	Seats    int
}

// TableOrderState estado transitorio de la mesa: mesero asignado y líneas de pedido.
type TableOrderState struct {
	TableCode string
	WaiterID  string
	Status    string
	Lines     []OrderLine
	UpdatedAt time.Time
}

// OrderLine línea de pedido; Sent indica si ya fue enviada a cocina/barra.
type OrderLine struct {
	ID          string
	ArticleCode string
	Quantity    decimal.Decimal
	Notes       string
	Sent        bool
}

// Reservation reserva de una mesa en un rango horario [StartsAt, EndsAt).
type Reservation struct {
	ID           string
	TableCode    string
	CustomerName string
	Phone        string
	StartsAt     time.Time
	EndsAt       time.Time
	Status       string
	CreatedBy    string
	CreatedAt    time.Time
}
