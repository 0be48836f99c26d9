package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ArticleRepository      = (*ArticleRepo)(nil)
	_ repository.KitComponentRepository = (*KitComponentRepo)(nil)
)

const articleColumns = `id, code, name, type, storage_unit, retail_unit, conversion_factor, cost, price, active, created_at, updated_at`

// ArticleRepo implementación de ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.StorageUnit, &a.RetailUnit,
		&a.ConversionFactor, &a.Cost, &a.Price, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Code, a.Name, a.Type, a.StorageUnit, a.RetailUnit,
		a.ConversionFactor, a.Cost, a.Price, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert article", err)
	}
	return nil
}

// GetByCode obtiene un artículo por código; (nil, nil) si no existe.
func (r *ArticleRepo) GetByCode(ctx context.Context, code string) (*entity.Article, error) {
	a, err := scanArticle(r.q.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get article", err)
	}
	return a, nil
}

// Update actualiza los datos editables del artículo.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	query := `
		UPDATE articles
		SET name = $2, storage_unit = $3, retail_unit = $4, conversion_factor = $5,
		    price = $6, active = $7, updated_at = $8
		WHERE code = $1`
	cmd, err := r.q.Exec(ctx, query,
		a.Code, a.Name, a.StorageUnit, a.RetailUnit, a.ConversionFactor, a.Price, a.Active, a.UpdatedAt,
	)
	if err != nil {
		return wrap("update article", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost fija el costo promedio ponderado (por unidad de detalle).
func (r *ArticleRepo) UpdateCost(ctx context.Context, code string, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE articles SET cost = $2, updated_at = now() WHERE code = $1`, code, cost)
	if err != nil {
		return wrap("update article cost", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos por código con paginación.
func (r *ArticleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	rows, err := r.q.Query(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrap("list articles", err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// KitComponentRepo componentes de kits.
type KitComponentRepo struct {
	q Querier
}

// NewKitComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKitComponentRepository(q Querier) *KitComponentRepo {
	return &KitComponentRepo{q: q}
}

// ListByKit devuelve los componentes en el orden en que se definieron.
func (r *KitComponentRepo) ListByKit(ctx context.Context, kitCode string) ([]entity.KitComponent, error) {
	query := `
		SELECT id, kit_code, component_code, quantity
		FROM kit_components WHERE kit_code = $1 ORDER BY position, component_code`
	rows, err := r.q.Query(ctx, query, kitCode)
	if err != nil {
		return nil, wrap("list kit components", err)
	}
	defer rows.Close()
	var list []entity.KitComponent
	for rows.Next() {
		var c entity.KitComponent
		if err := rows.Scan(&c.ID, &c.KitCode, &c.ComponentCode, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan kit component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ReplaceForKit borra la definición vigente y la reemplaza; debe correr dentro de una transacción.
func (r *KitComponentRepo) ReplaceForKit(ctx context.Context, kitCode string, components []entity.KitComponent) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM kit_components WHERE kit_code = $1`, kitCode); err != nil {
		return wrap("delete kit components", err)
	}
	query := `
		INSERT INTO kit_components (id, kit_code, component_code, quantity, position)
		VALUES ($1, $2, $3, $4, $5)`
	for i, c := range components {
		if _, err := r.q.Exec(ctx, query, c.ID, kitCode, c.ComponentCode, c.Quantity, i); err != nil {
			return wrap("insert kit component", err)
		}
	}
	return nil
}
