package repository

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/rentabilidade-collector/internal/domain"
)

func historicoComCota(dia time.Time, cota float64) domain.HistoricoFundo {
	return domain.HistoricoFundo{
		FinancialInstrumentID:   314,
		QuotaValue:              cota,
		FinancialInstrumentName: "FUNDO TESTE FIC FIM",
		PositionDate:            dia,
	}
}

func TestAgregarHistoricos(t *testing.T) {
	dia := func(d int) time.Time {
		return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		nome      string
		registros []domain.HistoricoFundo
		total     int
		menor     float64
		maior     float64
		media     float64
	}{
		{
			nome:      "uma linha",
			registros: []domain.HistoricoFundo{historicoComCota(dia(13), 10.5)},
			total:     1,
			menor:     10.5,
			maior:     10.5,
			media:     10.5,
		},
		{
			nome: "várias linhas",
			registros: []domain.HistoricoFundo{
				historicoComCota(dia(13), 10.0),
				historicoComCota(dia(14), 12.0),
				historicoComCota(dia(15), 11.0),
			},
			total: 3,
			menor: 10.0,
			maior: 12.0,
			media: 11.0,
		},
		{
			nome: "mínimo no fim da série",
			registros: []domain.HistoricoFundo{
				historicoComCota(dia(13), 12.0),
				historicoComCota(dia(14), 9.0),
			},
			total: 2,
			menor: 9.0,
			maior: 12.0,
			media: 10.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			agregado := agregarHistoricos(tt.registros)

			assert.Equal(t, tt.total, agregado.TotalRegistros)
			require.NotNil(t, agregado.QuotaValueMin)
			assert.Equal(t, tt.menor, *agregado.QuotaValueMin)
			assert.Equal(t, tt.maior, *agregado.QuotaValueMax)
			assert.InDelta(t, tt.media, *agregado.QuotaValueAvg, 1e-9)
			assert.Equal(t, tt.registros, agregado.Registros)
		})
	}
}

func TestAgregarHistoricosSemLinhas(t *testing.T) {
	agregado := agregarHistoricos(nil)

	// Janela sem linhas sai com agregado zerado, nunca com erro
	assert.Equal(t, 0, agregado.TotalRegistros)
	assert.Nil(t, agregado.QuotaValueMin)
	assert.Nil(t, agregado.QuotaValueMax)
	assert.Nil(t, agregado.QuotaValueAvg)
	assert.Nil(t, agregado.UltimoRegistro())
}

func TestAgregarHistoricosPreservaOrdemDeChegada(t *testing.T) {
	primeiro := historicoComCota(time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC), 10.0)
	ultimo := historicoComCota(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), 11.0)

	agregado := agregarHistoricos([]domain.HistoricoFundo{primeiro, ultimo})

	// A última linha da janela é a mais recente, a base da linha representativa
	require.NotNil(t, agregado.UltimoRegistro())
	assert.Equal(t, ultimo, *agregado.UltimoRegistro())
}

func TestClassificarErroTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errBanco := classificarErro(ctx, ctx.Err())

	assert.Equal(t, domain.FalhaQuery, errBanco.Tipo)
}

func TestClassificarErroDePostgres(t *testing.T) {
	errPq := &pq.Error{Code: "42P01", Message: "relation does not exist"}

	errBanco := classificarErro(context.Background(), errPq)

	assert.Equal(t, domain.FalhaQuery, errBanco.Tipo)

	var alvo *pq.Error
	require.ErrorAs(t, errBanco, &alvo)
	assert.Equal(t, pq.ErrorCode("42P01"), alvo.Code)
}

func TestClassificarErroDeConexao(t *testing.T) {
	errBanco := classificarErro(context.Background(), errors.New("connection refused"))

	assert.Equal(t, domain.FalhaConexao, errBanco.Tipo)
	assert.Contains(t, errBanco.Error(), "conexão")
}
