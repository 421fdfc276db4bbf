package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/vfg2006/rentabilidade-collector/infrastructure/database/postgres"
	"github.com/vfg2006/rentabilidade-collector/internal/domain"
)

const (
	historyTable    = `"FinancialInstrumentFundValueHistory" fvh`
	instrumentTable = `"FinancialInstrument" fi`
)

// FundHistoryRepository consulta o histórico de valores de cota de um
// instrumento dentro da janela de um período.
type FundHistoryRepository interface {
	BuscarHistoricoPeriodo(
		ctx context.Context,
		instrumentoID int,
		periodo domain.EPeriodo,
		referencia time.Time,
	) (domain.JanelaPeriodo, *domain.AgregadoHistorico, error)
}

type fundHistoryRepository struct {
	conn         postgres.Queryer
	queryTimeout time.Duration
}

func NewFundHistoryRepository(conn postgres.Queryer, queryTimeout time.Duration) FundHistoryRepository {
	return &fundHistoryRepository{
		conn:         conn,
		queryTimeout: queryTimeout,
	}
}

// BuscarHistoricoPeriodo calcula a janela do período a partir da data de
// referência e retorna as linhas de histórico ordenadas por data de posição,
// com os agregados de QuotaValue. A busca começa na data-âncora (véspera do
// início da janela) para que o primeiro dia do período tenha valor base.
func (r *fundHistoryRepository) BuscarHistoricoPeriodo(
	ctx context.Context,
	instrumentoID int,
	periodo domain.EPeriodo,
	referencia time.Time,
) (domain.JanelaPeriodo, *domain.AgregadoHistorico, error) {
	janela := domain.JanelaDoPeriodo(periodo, referencia)
	ancora := janela.DataAncora()

	query, args, err := squirrel.
		Select(
			`fvh."FinancialInstrumentFundValueHistoryId"`,
			`fvh."FinancialInstrumentId"`,
			`fvh."QuotaValue"`,
			`fi."Name"`,
			`fvh."PositionDate"`,
		).
		From(historyTable).
		Join(instrumentTable + ` ON fi."FinancialInstrumentId" = fvh."FinancialInstrumentId"`).
		JoinClause(`INNER JOIN (
			SELECT
				a."FinancialInstrumentId",
				COALESCE(MAX(b."PositionDate"), MIN(a."PositionDate")) AS dt_ini
			FROM "FinancialInstrumentFundValueHistory" a
			LEFT JOIN "FinancialInstrumentFundValueHistory" b
				ON b."FinancialInstrumentId" = a."FinancialInstrumentId"
				AND b."PositionDate" < ?
			WHERE a."FinancialInstrumentId" = ?
				AND a."PositionDate" >= ?
			GROUP BY a."FinancialInstrumentId"
		) sel_min ON fvh."FinancialInstrumentId" = sel_min."FinancialInstrumentId"`,
			ancora, instrumentoID, ancora).
		JoinClause(`INNER JOIN (
			SELECT
				"FinancialInstrumentId",
				MAX("PositionDate") AS dt_fim
			FROM "FinancialInstrumentFundValueHistory"
			WHERE "FinancialInstrumentId" = ?
				AND "PositionDate" < ?
			GROUP BY "FinancialInstrumentId"
		) sel_max ON fvh."FinancialInstrumentId" = sel_max."FinancialInstrumentId"`,
			instrumentoID, janela.DataFimPeriodo).
		Where(squirrel.Eq{`fvh."FinancialInstrumentId"`: instrumentoID}).
		Where(`fvh."PositionDate" >= sel_min.dt_ini AND fvh."PositionDate" <= sel_max.dt_fim`).
		OrderBy(`fvh."PositionDate" ASC`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return janela, nil, &domain.ErroBanco{Tipo: domain.FalhaQuery, Causa: errors.Wrap(err, "erro ao construir a query")}
	}

	queryCtx := ctx
	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	rows, err := r.conn.Query(queryCtx, query, args...)
	if err != nil {
		return janela, nil, classificarErro(queryCtx, err)
	}
	defer rows.Close()

	registros := make([]domain.HistoricoFundo, 0)
	for rows.Next() {
		historico, err := scanHistorico(rows)
		if err != nil {
			return janela, nil, &domain.ErroBanco{Tipo: domain.FalhaQuery, Causa: errors.Wrap(err, "erro ao escanear histórico")}
		}
		registros = append(registros, *historico)
	}

	if err := rows.Err(); err != nil {
		return janela, nil, classificarErro(queryCtx, err)
	}

	return janela, agregarHistoricos(registros), nil
}

// agregarHistoricos resume as linhas da janela: total e min/max/avg de
// QuotaValue. A ordem de chegada (data de posição ascendente) é preservada em
// Registros. Sem linhas, o agregado sai zerado com min/max/avg nulos, que não
// é erro.
func agregarHistoricos(registros []domain.HistoricoFundo) *domain.AgregadoHistorico {
	agregado := &domain.AgregadoHistorico{
		TotalRegistros: len(registros),
		Registros:      registros,
	}

	if len(registros) == 0 {
		return agregado
	}

	menor := registros[0].QuotaValue
	maior := registros[0].QuotaValue
	var soma float64
	for _, registro := range registros {
		if registro.QuotaValue < menor {
			menor = registro.QuotaValue
		}
		if registro.QuotaValue > maior {
			maior = registro.QuotaValue
		}
		soma += registro.QuotaValue
	}

	agregado.QuotaValueMin = floatPtr(menor)
	agregado.QuotaValueMax = floatPtr(maior)
	agregado.QuotaValueAvg = floatPtr(soma / float64(len(registros)))

	return agregado
}

func scanHistorico(rows *sql.Rows) (*domain.HistoricoFundo, error) {
	historico := &domain.HistoricoFundo{}

	err := rows.Scan(
		&historico.FinancialInstrumentFundValueHistoryID,
		&historico.FinancialInstrumentID,
		&historico.QuotaValue,
		&historico.FinancialInstrumentName,
		&historico.PositionDate,
	)
	if err != nil {
		return nil, err
	}

	return historico, nil
}

// classificarErro separa falha de execução de query (incluindo timeout, que é
// a query estourando o limite configurado) de falha de conectividade.
func classificarErro(ctx context.Context, err error) *domain.ErroBanco {
	if ctx.Err() != nil {
		return &domain.ErroBanco{Tipo: domain.FalhaQuery, Causa: errors.Wrap(err, "timeout na execução da query")}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &domain.ErroBanco{Tipo: domain.FalhaQuery, Causa: errors.Wrapf(err, "erro ao executar a query (código: %s)", pqErr.Code)}
	}

	return &domain.ErroBanco{Tipo: domain.FalhaConexao, Causa: errors.Wrap(err, "erro de conexão com o banco de dados")}
}

func floatPtr(f float64) *float64 {
	return &f
}
