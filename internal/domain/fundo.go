package domain

import "time"

// HistoricoFundo é uma linha da tabela de histórico de valores de cota,
// cruzada com a dimensão de instrumento financeiro.
type HistoricoFundo struct {
	FinancialInstrumentFundValueHistoryID int64
	FinancialInstrumentID                 int
	QuotaValue                            float64
	FinancialInstrumentName               string
	PositionDate                          time.Time
}

// AgregadoHistorico resume o histórico de um instrumento dentro de uma janela.
// Produzido por consulta e somente leitura depois de criado. Com zero linhas,
// TotalRegistros é 0 e min/max/avg ficam nulos, o que não é erro.
type AgregadoHistorico struct {
	TotalRegistros int
	QuotaValueMin  *float64
	QuotaValueMax  *float64
	QuotaValueAvg  *float64
	Registros      []HistoricoFundo
}

// AgregadoVazio é o agregado usado quando o banco falhou ou não retornou linhas
func AgregadoVazio() *AgregadoHistorico {
	return &AgregadoHistorico{}
}

// UltimoRegistro retorna a linha mais recente da janela (as linhas vêm
// ordenadas por PositionDate ascendente), ou nil se não houver nenhuma.
func (a *AgregadoHistorico) UltimoRegistro() *HistoricoFundo {
	if a == nil || len(a.Registros) == 0 {
		return nil
	}
	return &a.Registros[len(a.Registros)-1]
}

// HistoricoPeriodo é uma linha de histórico etiquetada com o período da
// varredura e a janela calculada, além das colunas de rentabilidade derivadas
// da série de cotas. É a unidade do CSV do banco.
type HistoricoPeriodo struct {
	HistoricoFundo
	PeriodoSelecionado int
	DescricaoPeriodo   string
	DataInicioPeriodo  time.Time
	DataFimPeriodo     time.Time

	Rentabilidade                     float64
	RentabilidadeAcumulada            float64
	PorcentagemRentabilidadeAcumulada float64
}
