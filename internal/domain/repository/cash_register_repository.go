package repository

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

// CashRegisterRepository puerto para cajas, sesiones y filas de conciliación.
type CashRegisterRepository interface {
	CreateRegister(ctx context.Context, register *entity.CashRegister) error
	GetRegister(ctx context.Context, code string) (*entity.CashRegister, error)
	ListRegisters(ctx context.Context) ([]*entity.CashRegister, error)

	CreateSession(ctx context.Context, session *entity.CashRegisterSession) error
	GetSession(ctx context.Context, id string) (*entity.CashRegisterSession, error)
	// GetSessionForUpdate bloquea la fila de la sesión (SELECT FOR UPDATE).
	GetSessionForUpdate(ctx context.Context, id string) (*entity.CashRegisterSession, error)
	FindOpenByAdmin(ctx context.Context, adminID string) (*entity.CashRegisterSession, error)
	FindOpenByRegister(ctx context.Context, registerCode string) (*entity.CashRegisterSession, error)
	UpdateSession(ctx context.Context, session *entity.CashRegisterSession) error

	// UpsertSessionPayment inserta o reemplaza la fila (session_id, method).
	UpsertSessionPayment(ctx context.Context, payment entity.SessionPayment) error
	ListSessionPayments(ctx context.Context, sessionID string) ([]entity.SessionPayment, error)
}
