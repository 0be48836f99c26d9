package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/inventory"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// defaultKardexDays rango por defecto cuando no se envía from.
const defaultKardexDays = 30

// KardexUseCase consulta el kardex agrupado por (artículo, bodega).
type KardexUseCase struct {
	repo repository.KardexRepository
	loc  *time.Location
	log  zerolog.Logger
}

// NewKardexUseCase construye el caso de uso. loc es la zona horaria del local para
// interpretar fechas sin hora (nil = UTC).
func NewKardexUseCase(repo repository.KardexRepository, loc *time.Location, log zerolog.Logger) *KardexUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &KardexUseCase{repo: repo, loc: loc, log: log}
}

// KardexQuery filtros de consulta. From/To aceptan YYYY-MM-DD (To inclusivo) o RFC3339 (To exclusivo).
type KardexQuery struct {
	From           string
	To             string
	ArticleCodes   []string
	WarehouseCodes []string
}

// ReportGroup grupo del kardex con el resultado de verificar su cadena de saldos.
type ReportGroup struct {
	inventory.KardexGroup
	ChainErr error
}

// KardexReport resultado de una consulta de kardex.
type KardexReport struct {
	From   time.Time
	To     time.Time
	Groups []ReportGroup
}

// Query lee las filas del rango [from, to), las agrupa y verifica la cadena de cada grupo.
// Una cadena rota no falla la consulta: se reporta en el grupo y en el log.
func (uc *KardexUseCase) Query(ctx context.Context, q KardexQuery) (*KardexReport, error) {
	from, to, err := uc.parseRange(q.From, q.To, time.Now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.List(ctx, entity.KardexFilter{
		From:           from,
		To:             to,
		ArticleCodes:   codes.NormalizeAll(q.ArticleCodes),
		WarehouseCodes: codes.NormalizeAll(q.WarehouseCodes),
	})
	if err != nil {
		return nil, err
	}
	report := &KardexReport{From: from, To: to}
	for _, g := range inventory.GroupKardex(rows) {
		chainErr := inventory.VerifyChain(g)
		if chainErr != nil {
			uc.log.Error().Err(chainErr).
				Str("article", g.ArticleCode).
				Str("warehouse", g.WarehouseCode).
				Msg("cadena de saldos del kardex inconsistente")
		}
		report.Groups = append(report.Groups, ReportGroup{KardexGroup: g, ChainErr: chainErr})
	}
	return report, nil
}

func (uc *KardexUseCase) parseRange(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	to := now
	if strings.TrimSpace(toStr) != "" {
		t, dateOnly, err := uc.parseTime(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1)
		}
		to = t
	}
	from := to.AddDate(0, 0, -defaultKardexDays)
	if strings.TrimSpace(fromStr) != "" {
		t, _, err := uc.parseTime(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("rango de fechas vacío: %w", domain.ErrInvalidInput)
	}
	return from.UTC(), to.UTC(), nil
}

func (uc *KardexUseCase) parseTime(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, uc.loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return t, false, nil
}

// Response convierte el reporte a la respuesta JSON: filas aplanadas en orden de grupo.
func (r *KardexReport) Response() dto.KardexResponse {
	out := dto.KardexResponse{
		From:   r.From,
		To:     r.To,
		Items:  []dto.KardexRowResponse{},
		Groups: make([]dto.KardexGroupResponse, 0, len(r.Groups)),
	}
	for _, g := range r.Groups {
		for _, row := range g.Rows {
			out.Items = append(out.Items, toKardexRowResponse(row.KardexRow))
		}
		final := g.Final()
		out.Groups = append(out.Groups, dto.KardexGroupResponse{
			ArticleCode:           g.ArticleCode,
			WarehouseCode:         g.WarehouseCode,
			InitialBalanceRetail:  g.Initial.Retail,
			InitialBalanceStorage: g.Initial.Storage,
			FinalBalanceRetail:    final.Retail,
			FinalBalanceStorage:   final.Storage,
			Rows:                  len(g.Rows),
			Consistent:            g.ChainErr == nil,
		})
	}
	return out
}

func signedDelta(r entity.KardexRow) inventory.Quantities {
	return inventory.SignedDelta(r.Direction, inventory.Quantities{Retail: r.QuantityRetail, Storage: r.QuantityStorage})
}
