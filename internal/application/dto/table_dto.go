package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateZoneRequest body para POST /api/zones.
type CreateZoneRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ZoneResponse zona del local.
type ZoneResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CreateTableRequest body para POST /api/tables.
type CreateTableRequest struct {
	Code     string `json:"code"`
	ZoneCode string `json:"zone_code"`
	Seats    int    `json:"seats"`
}

// OrderLineRequest body para POST /api/tables/:code/lines.
type OrderLineRequest struct {
	ArticleCode string          `json:"article_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Notes       string          `json:"notes,omitempty"`
}

// TableStatusRequest body para PUT /api/tables/:code/status.
type TableStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse línea de pedido.
type OrderLineResponse struct {
	ID          string          `json:"id"`
	ArticleCode string          `json:"article_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Notes       string          `json:"notes,omitempty"`
	Sent        bool            `json:"sent"`
}

// TableResponse mesa con su estado actual.
type TableResponse struct {
	Code      string              `json:"code"`
	ZoneCode  string              `json:"zone_code"`
	Seats     int                 `json:"seats"`
	WaiterID  string              `json:"waiter_id,omitempty"`
	Status    string              `json:"status"`
	Free      bool                `json:"free"`
	Lines     []OrderLineResponse `json:"lines"`
	UpdatedAt time.Time           `json:"updated_at,omitempty"`
}

// SendResponse líneas enviadas a cocina/barra.
type SendResponse struct {
	TableCode string              `json:"table_code"`
	Sent      []OrderLineResponse `json:"sent"`
}

// CreateReservationRequest body para POST /api/tables/:code/reservations.
type CreateReservationRequest struct {
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone,omitempty"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
}

// ReservationResponse reserva de mesa.
type ReservationResponse struct {
	ID           string    `json:"id"`
	TableCode    string    `json:"table_code"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone,omitempty"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Status       string    `json:"status"`
}
