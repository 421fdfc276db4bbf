package collecting

import (
	"github.com/vfg2006/rentabilidade-collector/internal/domain"
)

// Combinar junta as linhas de rentabilidade da API de uma chave com a janela
// e o agregado de histórico da mesma chave.
//
// A junção é por difusão: o agregado é escalar por chave, então cada linha de
// rentabilidade gera exatamente um registro combinado carregando os mesmos
// campos de janela e agregado. Sem linhas da API, sai exatamente um registro
// com os campos de rentabilidade vazios, garantindo que toda chave tentada
// apareça na saída.
func Combinar(
	id int,
	periodo int,
	rentabilidades []domain.Rentabilidade,
	janela domain.JanelaPeriodo,
	agregado *domain.AgregadoHistorico,
) []domain.RegistroCombinado {
	if agregado == nil {
		agregado = domain.AgregadoVazio()
	}

	base := domain.RegistroCombinado{
		ID:                  id,
		PeriodoSelecionado:  periodo,
		DataInicioPeriodo:   timePtr(janela.DataInicioPeriodo),
		DataFimPeriodo:      timePtr(janela.DataFimPeriodo),
		TotalRegistrosBanco: agregado.TotalRegistros,
		QuotaValueMin:       agregado.QuotaValueMin,
		QuotaValueMax:       agregado.QuotaValueMax,
		QuotaValueAvg:       agregado.QuotaValueAvg,
	}

	// Linha representativa do histórico: a mais recente da janela
	if ultimo := agregado.UltimoRegistro(); ultimo != nil {
		base.FinancialInstrumentFundValueHistoryID = int64Ptr(ultimo.FinancialInstrumentFundValueHistoryID)
		base.FinancialInstrumentID = intPtr(ultimo.FinancialInstrumentID)
		base.QuotaValue = floatPtr(ultimo.QuotaValue)
		base.FinancialInstrumentName = ultimo.FinancialInstrumentName
		base.PositionDate = timePtr(ultimo.PositionDate)
	}

	if len(rentabilidades) == 0 {
		return []domain.RegistroCombinado{base}
	}

	combinados := make([]domain.RegistroCombinado, 0, len(rentabilidades))
	for _, rentabilidade := range rentabilidades {
		registro := base
		registro.DataInicial = rentabilidade.DataInicial
		registro.DataFinal = rentabilidade.DataFinal
		registro.PercentualSobreBenchmark = rentabilidade.PercentualSobreBenchmark
		registro.PercentualAcumuladoBenchmark = rentabilidade.PercentualAcumuladoBenchmark
		registro.PercentualAcumulado = rentabilidade.PercentualAcumulado
		registro.NominalAcumulado = rentabilidade.NominalAcumulado
		combinados = append(combinados, registro)
	}

	return combinados
}
