package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

type userRepo struct{ db db }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.users {
			if other.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				cp := u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.users[u.ID]; !ok {
			return domain.ErrUserNotFound
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	err := r.db.read(func(st *state) error {
		list := make([]entity.User, 0, len(st.users))
		for _, u := range st.users {
			list = append(list, u)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
		for _, u := range page(list, limit, offset) {
			cp := u
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}
