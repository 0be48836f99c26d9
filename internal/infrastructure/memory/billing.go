package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

type customerRepo struct{ db db }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.customers {
			if other.TaxID == c.TaxID {
				return domain.ErrDuplicate
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.db.read(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.db.read(func(st *state) error {
		for _, c := range st.customers {
			if c.TaxID == taxID {
				cp := c
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.db.read(func(st *state) error {
		list := make([]entity.Customer, 0, len(st.customers))
		for _, c := range st.customers {
			list = append(list, c)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		for _, c := range page(list, limit, offset) {
			cp := c
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) CreateTerm(_ context.Context, t *entity.PaymentTerm) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.terms[t.Code]; ok {
			return domain.ErrDuplicate
		}
		st.terms[t.Code] = *t
		return nil
	})
}

func (r *customerRepo) GetTerm(_ context.Context, code string) (*entity.PaymentTerm, error) {
	var out *entity.PaymentTerm
	err := r.db.read(func(st *state) error {
		if t, ok := st.terms[code]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) ListTerms(_ context.Context) ([]*entity.PaymentTerm, error) {
	var out []*entity.PaymentTerm
	err := r.db.read(func(st *state) error {
		for _, k := range sortedKeys(st.terms) {
			t := st.terms[k]
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

type receivableRepo struct{ db db }

func (r *receivableRepo) CreateDocument(_ context.Context, d *entity.ReceivableDocument) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.documents[d.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.documents {
			if other.CustomerID == d.CustomerID && other.Number == d.Number {
				return domain.ErrDuplicate
			}
		}
		st.documents[d.ID] = *d
		return nil
	})
}

func (r *receivableRepo) GetDocument(_ context.Context, id string) (*entity.ReceivableDocument, error) {
	var out *entity.ReceivableDocument
	err := r.db.read(func(st *state) error {
		if d, ok := st.documents[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *receivableRepo) GetDocumentForUpdate(ctx context.Context, id string) (*entity.ReceivableDocument, error) {
	return r.GetDocument(ctx, id)
}

func (r *receivableRepo) UpdateDocument(_ context.Context, d *entity.ReceivableDocument) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.documents[d.ID]; !ok {
			return domain.ErrNotFound
		}
		st.documents[d.ID] = *d
		return nil
	})
}

func (r *receivableRepo) ListByCustomer(_ context.Context, customerID string, onlyOpen bool) ([]*entity.ReceivableDocument, error) {
	var out []*entity.ReceivableDocument
	err := r.db.read(func(st *state) error {
		for _, d := range st.documents {
			if d.CustomerID != customerID || (onlyOpen && d.Status != entity.DocumentStatusOpen) {
				continue
			}
			cp := d
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.Before(out[j].IssuedAt) })
	return out, err
}

func (r *receivableRepo) CreatePayment(_ context.Context, p *entity.DocumentPayment) error {
	return r.db.write(func(st *state) error {
		st.docPayments[p.DocumentID] = append(slices.Clone(st.docPayments[p.DocumentID]), *p)
		return nil
	})
}

func (r *receivableRepo) ListPayments(_ context.Context, documentID string) ([]entity.DocumentPayment, error) {
	var out []entity.DocumentPayment
	err := r.db.read(func(st *state) error {
		out = slices.Clone(st.docPayments[documentID])
		return nil
	})
	return out, err
}
