package cashregister

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/cashregister"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// UseCase apertura, consulta y cierre conciliado de sesiones de caja.
type UseCase struct {
	txRunner TxRunner
	repo     repository.CashRegisterRepository
	renderer ClosureRenderer
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. renderer puede ser nil si no se exponen reportes PDF.
func NewUseCase(txRunner TxRunner, repo repository.CashRegisterRepository, renderer ClosureRenderer, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, renderer: renderer, log: log}
}

// CreateRegister registra una caja física.
func (uc *UseCase) CreateRegister(ctx context.Context, in dto.CreateCashRegisterRequest) (*dto.CashRegisterResponse, error) {
	code := codes.Normalize(in.Code)
	if code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetRegister(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	register := &entity.CashRegister{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      in.Name,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.CreateRegister(ctx, register); err != nil {
		return nil, err
	}
	return toRegisterResponse(register), nil
}

// ListRegisters lista las cajas.
func (uc *UseCase) ListRegisters(ctx context.Context) ([]dto.CashRegisterResponse, error) {
	list, err := uc.repo.ListRegisters(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashRegisterResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRegisterResponse(r))
	}
	return out, nil
}

// Open abre una sesión para adminID. Falla con ErrSessionAlreadyOpen si el usuario o la caja
// ya tienen una sesión abierta.
func (uc *UseCase) Open(ctx context.Context, adminID string, in dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	code := codes.Normalize(in.CashRegisterCode)
	if adminID == "" || code == "" || in.OpeningAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var session *entity.CashRegisterSession
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		register, err := uow.CashRegisters.GetRegister(ctx, code)
		if err != nil {
			return err
		}
		if register == nil {
			return fmt.Errorf("caja %s: %w", code, domain.ErrNotFound)
		}
		if !register.Active {
			return fmt.Errorf("caja %s inactiva: %w", code, domain.ErrInvalidInput)
		}
		if open, err := uow.CashRegisters.FindOpenByAdmin(ctx, adminID); err != nil {
			return err
		} else if open != nil {
			return fmt.Errorf("el usuario tiene abierta la caja %s: %w", open.CashRegisterCode, domain.ErrSessionAlreadyOpen)
		}
		if open, err := uow.CashRegisters.FindOpenByRegister(ctx, code); err != nil {
			return err
		} else if open != nil {
			return fmt.Errorf("caja %s: %w", code, domain.ErrSessionAlreadyOpen)
		}
		session = &entity.CashRegisterSession{
			ID:               uuid.New().String(),
			CashRegisterCode: code,
			AdminID:          adminID,
			Status:           entity.SessionStatusOpen,
			OpeningAmount:    in.OpeningAmount,
			OpeningNotes:     in.Notes,
			OpenedAt:         time.Now().UTC(),
		}
		return uow.CashRegisters.CreateSession(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", session.ID).
		Str("cash_register", code).
		Str("admin_id", adminID).
		Str("opening_amount", in.OpeningAmount.String()).
		Msg("sesión de caja abierta")
	return toSessionResponse(session, nil), nil
}

// Close concilia y cierra la sesión. Sin SessionID se cierra la sesión abierta del usuario.
// La sesión pasa de OPEN a CLOSED una sola vez; el resumen queda guardado como snapshot.
func (uc *UseCase) Close(ctx context.Context, adminID string, in dto.CloseSessionRequest) (*dto.ClosureResponse, error) {
	if adminID == "" || in.ClosingAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	reported := make([]cashregister.PaymentAmount, 0, len(in.Payments))
	for _, p := range in.Payments {
		if cashregister.NormalizeMethod(p.Method) == "" || p.Amount.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("pago reportado %q: %w", p.Method, domain.ErrInvalidInput)
		}
		reported = append(reported, cashregister.PaymentAmount{Method: p.Method, Amount: p.Amount})
	}

	var (
		session *entity.CashRegisterSession
		summary cashregister.ClosureSummary
	)
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		session, err = lockSession(ctx, uow.CashRegisters, adminID, in.SessionID)
		if err != nil {
			return err
		}
		totals, err := uow.Invoices.PaymentTotalsBySession(ctx, session.ID)
		if err != nil {
			return err
		}
		expected := make([]cashregister.ExpectedPayment, 0, len(totals))
		for _, t := range totals {
			expected = append(expected, cashregister.ExpectedPayment{Method: t.Method, Amount: t.Amount, Count: t.Count})
		}

		closedAt := time.Now().UTC()
		summary = cashregister.BuildClosureSummary(session, in.ClosingAmount, closedAt, reported, expected)
		raw, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		closing := in.ClosingAmount
		session.Status = entity.SessionStatusClosed
		session.ClosingAmount = &closing
		session.ClosingNotes = in.Notes
		session.ClosedAt = &closedAt
		session.ClosedBy = adminID
		session.Summary = raw
		if err := uow.CashRegisters.UpdateSession(ctx, session); err != nil {
			return err
		}
		for _, p := range summary.SessionPayments() {
			if err := uow.CashRegisters.UpsertSessionPayment(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := uc.log.Info()
	if !summary.TotalDifference.IsZero() || !summary.CashDifference.IsZero() {
		ev = uc.log.Warn()
	}
	ev.Str("session_id", session.ID).
		Str("cash_register", session.CashRegisterCode).
		Str("total_expected", summary.TotalExpected.String()).
		Str("total_reported", summary.TotalReported.String()).
		Str("total_difference", summary.TotalDifference.String()).
		Str("cash_difference", summary.CashDifference.String()).
		Msg("sesión de caja cerrada")

	payments := toPaymentResponses(summary.SessionPayments())
	return &dto.ClosureResponse{
		Session:         *toSessionResponse(session, payments),
		Methods:         payments,
		TotalExpected:   summary.TotalExpected,
		TotalReported:   summary.TotalReported,
		TotalDifference: summary.TotalDifference,
		ExpectedCash:    summary.ExpectedCash,
		CashDifference:  summary.CashDifference,
	}, nil
}

// lockSession obtiene y bloquea la sesión a cerrar validando estado y dueño.
func lockSession(ctx context.Context, repo repository.CashRegisterRepository, adminID, sessionID string) (*entity.CashRegisterSession, error) {
	if sessionID == "" {
		open, err := repo.FindOpenByAdmin(ctx, adminID)
		if err != nil {
			return nil, err
		}
		if open == nil {
			return nil, domain.ErrSessionNotOpen
		}
		sessionID = open.ID
	}
	session, err := repo.GetSessionForUpdate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("sesión %s: %w", sessionID, domain.ErrNotFound)
	}
	if !session.IsOpen() {
		return nil, domain.ErrSessionNotOpen
	}
	if session.AdminID != adminID {
		return nil, domain.ErrSessionOwner
	}
	return session, nil
}

// GetSession devuelve una sesión con sus filas de conciliación.
func (uc *UseCase) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := uc.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.repo.ListSessionPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session, toPaymentResponses(payments)), nil
}

// CurrentSession devuelve la sesión abierta del usuario o ErrSessionNotOpen.
func (uc *UseCase) CurrentSession(ctx context.Context, adminID string) (*dto.SessionResponse, error) {
	session, err := uc.repo.FindOpenByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotOpen
	}
	return toSessionResponse(session, nil), nil
}

// ClosureSummary devuelve el snapshot guardado al cerrar la sesión.
func (uc *UseCase) ClosureSummary(ctx context.Context, id string) (*cashregister.ClosureSummary, error) {
	session, err := uc.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.IsOpen() || len(session.Summary) == 0 {
		return nil, fmt.Errorf("la sesión %s no está cerrada: %w", id, domain.ErrConflict)
	}
	var summary cashregister.ClosureSummary
	if err := json.Unmarshal(session.Summary, &summary); err != nil {
		return nil, fmt.Errorf("resumen de cierre: %w", err)
	}
	return &summary, nil
}

// ClosurePDF genera el reporte PDF del cierre.
func (uc *UseCase) ClosurePDF(ctx context.Context, id string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("reporte de cierre: %w", domain.ErrReportUnavailable)
	}
	summary, err := uc.ClosureSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderClosure(ctx, summary)
}

func toRegisterResponse(r *entity.CashRegister) *dto.CashRegisterResponse {
	return &dto.CashRegisterResponse{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}

func toSessionResponse(s *entity.CashRegisterSession, payments []dto.SessionPaymentResponse) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:               s.ID,
		CashRegisterCode: s.CashRegisterCode,
		AdminID:          s.AdminID,
		Status:           s.Status,
		OpeningAmount:    s.OpeningAmount,
		OpeningNotes:     s.OpeningNotes,
		OpenedAt:         s.OpenedAt,
		ClosingAmount:    s.ClosingAmount,
		ClosingNotes:     s.ClosingNotes,
		ClosedAt:         s.ClosedAt,
		Payments:         payments,
	}
}

func toPaymentResponses(list []entity.SessionPayment) []dto.SessionPaymentResponse {
	out := make([]dto.SessionPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.SessionPaymentResponse{
			Method:     p.Method,
			Expected:   p.Expected,
			Reported:   p.Reported,
			Difference: p.Difference,
			Count:      p.Count,
		})
	}
	return out
}
