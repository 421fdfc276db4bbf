package comparing

import (
	"sort"

	"github.com/vfg2006/rentabilidade-collector/internal/domain"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
)

type chaveGrupo struct {
	instrumento int
	periodo     int
}

// CalcularRentabilidade deriva as colunas de rentabilidade da série de cotas
// de cada grupo (instrumento, período).
//
// A linha âncora é a de data anterior ao início do período. O primeiro dia do
// período rende (cota / cota da âncora) - 1; sem âncora, rende zero. Os dias
// seguintes rendem sobre a cota do dia anterior, e o acumulado compõe:
// ((acumulado anterior + 1) * (rentabilidade + 1)) - 1.
func CalcularRentabilidade(historicos []domain.HistoricoPeriodo) []domain.HistoricoPeriodo {
	if len(historicos) == 0 {
		return nil
	}

	grupos := make(map[chaveGrupo][]domain.HistoricoPeriodo)
	ordem := make([]chaveGrupo, 0)
	for _, historico := range historicos {
		chave := chaveGrupo{instrumento: historico.FinancialInstrumentID, periodo: historico.PeriodoSelecionado}
		if _, existe := grupos[chave]; !existe {
			ordem = append(ordem, chave)
		}
		grupos[chave] = append(grupos[chave], historico)
	}

	resultado := make([]domain.HistoricoPeriodo, 0, len(historicos))
	for _, chave := range ordem {
		resultado = append(resultado, calcularGrupo(chave, grupos[chave])...)
	}

	return resultado
}

func calcularGrupo(chave chaveGrupo, registros []domain.HistoricoPeriodo) []domain.HistoricoPeriodo {
	sort.SliceStable(registros, func(i, j int) bool {
		return registros[i].PositionDate.Before(registros[j].PositionDate)
	})

	// Separar a âncora (data anterior ao início do período) das linhas do período
	var ancora *domain.HistoricoPeriodo
	periodo := make([]domain.HistoricoPeriodo, 0, len(registros))
	for i := range registros {
		if registros[i].PositionDate.Before(registros[i].DataInicioPeriodo) {
			if ancora == nil {
				ancora = &registros[i]
			}
			continue
		}
		periodo = append(periodo, registros[i])
	}

	if ancora == nil && len(periodo) > 0 {
		log.L.WithFields(log.Fields{
			"id":      chave.instrumento,
			"periodo": chave.periodo,
		}).Warn("Âncora não encontrada, rentabilidade do primeiro dia será zero")
	}

	acumuladaAnterior := 0.0
	for i := range periodo {
		cotaAtual := periodo[i].QuotaValue

		var rentabilidade, acumulada float64
		if i == 0 {
			if ancora != nil && ancora.QuotaValue != 0 {
				rentabilidade = (cotaAtual / ancora.QuotaValue) - 1
				acumulada = rentabilidade
			}
		} else {
			cotaAnterior := periodo[i-1].QuotaValue
			if cotaAnterior != 0 {
				rentabilidade = (cotaAtual / cotaAnterior) - 1
			}
			acumulada = ((acumuladaAnterior + 1) * (rentabilidade + 1)) - 1
		}

		periodo[i].Rentabilidade = rentabilidade
		periodo[i].RentabilidadeAcumulada = acumulada
		periodo[i].PorcentagemRentabilidadeAcumulada = acumulada * 100

		acumuladaAnterior = acumulada
	}

	return periodo
}
