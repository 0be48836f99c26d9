package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type cashRegisterRepo struct{ db db }

func (r *cashRegisterRepo) CreateRegister(_ context.Context, c *entity.CashRegister) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.registers[c.Code]; ok {
			return domain.ErrDuplicate
		}
		st.registers[c.Code] = *c
		return nil
	})
}

func (r *cashRegisterRepo) GetRegister(_ context.Context, code string) (*entity.CashRegister, error) {
	var out *entity.CashRegister
	err := r.db.read(func(st *state) error {
		if c, ok := st.registers[code]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *cashRegisterRepo) ListRegisters(_ context.Context) ([]*entity.CashRegister, error) {
	var out []*entity.CashRegister
	err := r.db.read(func(st *state) error {
		for _, k := range sortedKeys(st.registers) {
			c := st.registers[k]
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func copySession(s entity.CashRegisterSession) *entity.CashRegisterSession {
	cp := s
	if s.ClosingAmount != nil {
		v := *s.ClosingAmount
		cp.ClosingAmount = &v
	}
	if s.ClosedAt != nil {
		v := *s.ClosedAt
		cp.ClosedAt = &v
	}
	cp.Summary = slices.Clone(s.Summary)
	return &cp
}

// CreateSession aplica la misma unicidad que los índices parciales de la BD:
// una sola sesión OPEN por administrador y por caja.
func (r *cashRegisterRepo) CreateSession(_ context.Context, s *entity.CashRegisterSession) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.sessions[s.ID]; ok {
			return domain.ErrDuplicate
		}
		if s.IsOpen() {
			for _, other := range st.sessions {
				if other.IsOpen() && (other.AdminID == s.AdminID || other.CashRegisterCode == s.CashRegisterCode) {
					return domain.ErrSessionAlreadyOpen
				}
			}
		}
		st.sessions[s.ID] = *copySession(*s)
		return nil
	})
}

func (r *cashRegisterRepo) GetSession(_ context.Context, id string) (*entity.CashRegisterSession, error) {
	var out *entity.CashRegisterSession
	err := r.db.read(func(st *state) error {
		if s, ok := st.sessions[id]; ok {
			out = copySession(s)
		}
		return nil
	})
	return out, err
}

func (r *cashRegisterRepo) GetSessionForUpdate(ctx context.Context, id string) (*entity.CashRegisterSession, error) {
	return r.GetSession(ctx, id)
}

func (r *cashRegisterRepo) findOpen(match func(s entity.CashRegisterSession) bool) (*entity.CashRegisterSession, error) {
	var out *entity.CashRegisterSession
	err := r.db.read(func(st *state) error {
		for _, s := range st.sessions {
			if s.IsOpen() && match(s) {
				out = copySession(s)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *cashRegisterRepo) FindOpenByAdmin(_ context.Context, adminID string) (*entity.CashRegisterSession, error) {
	return r.findOpen(func(s entity.CashRegisterSession) bool { return s.AdminID == adminID })
}

func (r *cashRegisterRepo) FindOpenByRegister(_ context.Context, code string) (*entity.CashRegisterSession, error) {
	return r.findOpen(func(s entity.CashRegisterSession) bool { return s.CashRegisterCode == code })
}

func (r *cashRegisterRepo) UpdateSession(_ context.Context, s *entity.CashRegisterSession) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.sessions[s.ID]; !ok {
			return domain.ErrNotFound
		}
		st.sessions[s.ID] = *copySession(*s)
		return nil
	})
}

func (r *cashRegisterRepo) UpsertSessionPayment(_ context.Context, p entity.SessionPayment) error {
	return r.db.write(func(st *state) error {
		m, ok := st.sessionPayments[p.SessionID]
		if !ok {
			m = map[string]entity.SessionPayment{}
			st.sessionPayments[p.SessionID] = m
		}
		m[p.Method] = p
		return nil
	})
}

func (r *cashRegisterRepo) ListSessionPayments(_ context.Context, sessionID string) ([]entity.SessionPayment, error) {
	var out []entity.SessionPayment
	err := r.db.read(func(st *state) error {
		m := st.sessionPayments[sessionID]
		for _, k := range sortedKeys(m) {
			out = append(out, m[k])
		}
		return nil
	})
	return out, err
}

type invoiceRepo struct{ db db }

func copyInvoice(inv entity.SalesInvoice) *entity.SalesInvoice {
	inv.Lines = slices.Clone(inv.Lines)
	inv.Payments = slices.Clone(inv.Payments)
	return &inv
}

func (r *invoiceRepo) Create(_ context.Context, inv *entity.SalesInvoice) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.invoices[inv.ID]; ok {
			return domain.ErrDuplicate
		}
		st.invoices[inv.ID] = *copyInvoice(*inv)
		return nil
	})
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (*entity.SalesInvoice, error) {
	var out *entity.SalesInvoice
	err := r.db.read(func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = copyInvoice(inv)
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) NextNumber(_ context.Context) (int64, error) {
	var n int64
	err := r.db.write(func(st *state) error {
		st.invoiceSeq++
		n = st.invoiceSeq
		return nil
	})
	return n, err
}

func (r *invoiceRepo) PaymentTotalsBySession(_ context.Context, sessionID string) ([]repository.PaymentTotal, error) {
	byMethod := map[string]*repository.PaymentTotal{}
	err := r.db.read(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.SessionID != sessionID {
				continue
			}
			for _, p := range inv.Payments {
				t, ok := byMethod[p.Method]
				if !ok {
					t = &repository.PaymentTotal{Method: p.Method, Amount: decimal.Zero}
					byMethod[p.Method] = t
				}
				t.Amount = t.Amount.Add(p.Amount)
				t.Count++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.PaymentTotal, 0, len(byMethod))
	for _, t := range byMethod {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out, nil
}
