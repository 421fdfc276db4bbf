package domain

import (
	"fmt"
	"time"
)

// EPeriodo é o enum interno de períodos usado nas consultas ao banco,
// espelhando o EPeriodo da plataforma.
type EPeriodo int

const (
	SemanaAtual EPeriodo = iota
	MesAtual
	AnoAtual
	DozeMeses
	TresAnos
	DesdeDoisMilDezenove
	DoisAnos
	TrintaDias
)

// Mapeamento do período da API (1-8) para o enum interno (0-7)
var periodoPorCodigoAPI = map[int]EPeriodo{
	1: SemanaAtual,
	2: MesAtual,
	3: AnoAtual,
	4: DozeMeses,
	5: TresAnos,
	6: DesdeDoisMilDezenove,
	7: DoisAnos,
	8: TrintaDias,
}

var nomePorPeriodo = map[EPeriodo]string{
	SemanaAtual:          "SemanaAtual",
	MesAtual:             "MesAtual",
	AnoAtual:             "AnoAtual",
	DozeMeses:            "DozeMeses",
	TresAnos:             "TresAnos",
	DesdeDoisMilDezenove: "DesdeDoisMilDezenove",
	DoisAnos:             "DoisAnos",
	TrintaDias:           "TrintaDias",
}

// Descrições exibidas pela API para cada período selecionado
var descricaoPorCodigoAPI = map[int]string{
	1: "Na semana atual",
	2: "No mês atual",
	3: "No ano atual",
	4: "Nos últimos 12 meses",
	5: "Nos últimos 3 anos",
	6: "Desde 2019",
	7: "Nos últimos 2 anos",
	8: "Nos últimos 30 dias",
}

// MapearPeriodo converte o período selecionado na API (1-8) para o enum
// interno (0-7). Um código fora da faixa é erro de programação, já que a
// varredura é fixa, e vira ErroConfiguracao.
func MapearPeriodo(codigoAPI int) (EPeriodo, error) {
	periodo, ok := periodoPorCodigoAPI[codigoAPI]
	if !ok {
		return 0, NovoErroConfiguracao(fmt.Sprintf("período %d fora da faixa 1-8", codigoAPI))
	}
	return periodo, nil
}

// Nome retorna o identificador do enum (SemanaAtual, MesAtual, ...)
func (p EPeriodo) Nome() string {
	if nome, ok := nomePorPeriodo[p]; ok {
		return nome
	}
	return "Desconhecido"
}

// DescricaoAPI retorna a descrição do período como exibida pela API
func DescricaoAPI(codigoAPI int) string {
	if descricao, ok := descricaoPorCodigoAPI[codigoAPI]; ok {
		return descricao
	}
	return fmt.Sprintf("Período %d", codigoAPI)
}

// JanelaPeriodo delimita o intervalo de datas coberto por um período,
// calculado a partir de uma data de referência injetada.
type JanelaPeriodo struct {
	DataInicioPeriodo time.Time
	DataFimPeriodo    time.Time
}

// DataAncora é o dia anterior ao início do período. A consulta de histórico
// busca desde a âncora para que a rentabilidade do primeiro dia tenha base.
func (j JanelaPeriodo) DataAncora() time.Time {
	return j.DataInicioPeriodo.AddDate(0, 0, -1)
}

// JanelaDoPeriodo calcula a janela de datas de um período a partir da data de
// referência. A referência é parâmetro explícito para manter o pipeline
// determinístico e testável.
func JanelaDoPeriodo(p EPeriodo, referencia time.Time) JanelaPeriodo {
	referencia = truncarDia(referencia)

	switch p {
	case SemanaAtual:
		inicio := referencia.AddDate(0, 0, -diasDesdeSegunda(referencia))
		return JanelaPeriodo{DataInicioPeriodo: inicio, DataFimPeriodo: inicio.AddDate(0, 0, 6)}
	case MesAtual:
		inicio := time.Date(referencia.Year(), referencia.Month(), 1, 0, 0, 0, 0, referencia.Location())
		fim := inicio.AddDate(0, 1, -1)
		return JanelaPeriodo{DataInicioPeriodo: inicio, DataFimPeriodo: fim}
	case AnoAtual:
		inicio := time.Date(referencia.Year(), time.January, 1, 0, 0, 0, 0, referencia.Location())
		fim := time.Date(referencia.Year(), time.December, 31, 0, 0, 0, 0, referencia.Location())
		return JanelaPeriodo{DataInicioPeriodo: inicio, DataFimPeriodo: fim}
	case DozeMeses:
		return JanelaPeriodo{DataInicioPeriodo: referencia.AddDate(0, 0, -365), DataFimPeriodo: referencia}
	case TresAnos:
		return JanelaPeriodo{DataInicioPeriodo: referencia.AddDate(0, 0, -3*365), DataFimPeriodo: referencia}
	case DesdeDoisMilDezenove:
		inicio := time.Date(2019, time.January, 1, 0, 0, 0, 0, referencia.Location())
		return JanelaPeriodo{DataInicioPeriodo: inicio, DataFimPeriodo: referencia}
	case DoisAnos:
		return JanelaPeriodo{DataInicioPeriodo: referencia.AddDate(0, 0, -2*365), DataFimPeriodo: referencia}
	case TrintaDias:
		return JanelaPeriodo{DataInicioPeriodo: referencia.AddDate(0, 0, -30), DataFimPeriodo: referencia}
	default:
		// Período desconhecido cai no mês atual, como na plataforma
		return JanelaDoPeriodo(MesAtual, referencia)
	}
}

func truncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// diasDesdeSegunda retorna quantos dias se passaram desde a segunda-feira da
// semana de t (segunda = 0 ... domingo = 6).
func diasDesdeSegunda(t time.Time) int {
	dia := int(t.Weekday())
	if dia == 0 {
		return 6
	}
	return dia - 1
}
