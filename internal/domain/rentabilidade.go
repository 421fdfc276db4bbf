package domain

import "time"

// Rentabilidade é um registro achatado do array Rentabilidades da resposta da
// API, etiquetado com a chave (Id, PeriodoSelecionado) que o originou.
// Imutável depois de criado.
type Rentabilidade struct {
	ID                           int
	PeriodoSelecionado           int
	DescricaoPeriodo             string
	DataInicial                  string
	DataFinal                    string
	PercentualSobreBenchmark     *float64
	PercentualAcumuladoBenchmark *float64
	PercentualAcumulado          *float64
	NominalAcumulado             *float64
}

// RegistroCombinado é a projeção achatada de uma linha de rentabilidade da API
// com a janela e o agregado de histórico da mesma chave. É a unidade gravada
// no CSV combinado. Sempre carrega (ID, PeriodoSelecionado) válidos, mesmo
// quando API ou banco não retornaram dados.
type RegistroCombinado struct {
	ID                           int
	PeriodoSelecionado           int
	DataInicial                  string
	DataFinal                    string
	PercentualSobreBenchmark     *float64
	PercentualAcumuladoBenchmark *float64
	PercentualAcumulado          *float64
	NominalAcumulado             *float64

	// Linha de histórico representativa: a mais recente da janela
	FinancialInstrumentFundValueHistoryID *int64
	FinancialInstrumentID                 *int
	QuotaValue                            *float64
	FinancialInstrumentName               string
	PositionDate                          *time.Time

	DataInicioPeriodo   *time.Time
	DataFimPeriodo      *time.Time
	TotalRegistrosBanco int
	QuotaValueMin       *float64
	QuotaValueMax       *float64
	QuotaValueAvg       *float64
}

// StatusChave discrimina o desfecho de cada chave da varredura
type StatusChave string

const (
	ChaveSucesso         StatusChave = "sucesso"
	ChaveSemDadosAPI     StatusChave = "sem_dados_api"
	ChaveFalhaTransporte StatusChave = "falha_transporte"
	ChaveBancoDegradado  StatusChave = "banco_degradado"
	ChavePeriodoInvalido StatusChave = "periodo_invalido"
)

// ResultadoChave registra o desfecho de uma chave (Id, Período) da varredura.
// A falha de uma chave nunca aborta a execução; ela apenas deixa de
// contribuir registros (transporte) ou contribui com agregado vazio (banco).
type ResultadoChave struct {
	ID        int
	Periodo   int
	Status    StatusChave
	Registros int
	Erro      error
}

// ResultadoColeta acumula a saída completa de uma varredura
type ResultadoColeta struct {
	Combinados []RegistroCombinado
	API        []Rentabilidade
	Banco      []HistoricoPeriodo
	Chaves     []ResultadoChave
}
