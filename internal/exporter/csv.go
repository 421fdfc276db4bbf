package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/vfg2006/rentabilidade-collector/internal/domain"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
	"github.com/vfg2006/rentabilidade-collector/pkg/utils"
)

// Ordem fixa de colunas do CSV combinado. Campos ausentes viram string vazia,
// nunca coluna omitida: toda linha tem a mesma largura.
var colunasCombinado = []string{
	"Id",
	"PeriodoSelecionado",
	"DataInicial",
	"DataFinal",
	"PercentualSobreBenchmark",
	"PercentualAcumuladoBenchmark",
	"PercentualAcumulado",
	"NominalAcumulado",
	"FinancialInstrumentFundValueHistoryId",
	"FinancialInstrumentId",
	"QuotaValue",
	"FinancialInstrumentName",
	"PositionDate",
	"DataInicioPeriodo",
	"DataFimPeriodo",
	"TotalRegistrosBanco",
	"QuotaValueMin",
	"QuotaValueMax",
	"QuotaValueAvg",
}

var colunasAPI = []string{
	"Id",
	"PeriodoSelecionado",
	"DescricaoPeriodo",
	"DataInicial",
	"DataFinal",
	"PercentualSobreBenchmark",
	"PercentualAcumuladoBenchmark",
	"PercentualAcumulado",
	"NominalAcumulado",
}

var colunasBanco = []string{
	"FinancialInstrumentFundValueHistoryId",
	"FinancialInstrumentId",
	"QuotaValue",
	"FinancialInstrumentName",
	"PositionDate",
	"PeriodoSelecionado",
	"DescricaoPeriodo",
	"DataInicioPeriodo",
	"DataFimPeriodo",
	"Rentabilidade",
	"RentabilidadeAcumulada",
	"PorcentagemRentabilidadeAcumulada",
}

var colunasComparacao = []string{
	"Id",
	"PeriodoSelecionado",
	"DescricaoPeriodo",
	"RentabilidadeAPI",
	"RentabilidadeBanco",
	"DiferencaAbsoluta",
	"DentroTolerancia",
	"Status",
}

// ExportarCombinado grava o CSV combinado ordenado por (Id, PeriodoSelecionado).
// A ordenação é estável: linhas da mesma chave preservam a ordem de chegada.
// Retorna o número de registros gravados.
func ExportarCombinado(registros []domain.RegistroCombinado, caminho string) (int, error) {
	ordenados := make([]domain.RegistroCombinado, len(registros))
	copy(ordenados, registros)
	sort.SliceStable(ordenados, func(i, j int) bool {
		if ordenados[i].ID != ordenados[j].ID {
			return ordenados[i].ID < ordenados[j].ID
		}
		return ordenados[i].PeriodoSelecionado < ordenados[j].PeriodoSelecionado
	})

	linhas := make([][]string, 0, len(ordenados))
	for _, registro := range ordenados {
		linhas = append(linhas, []string{
			strconv.Itoa(registro.ID),
			strconv.Itoa(registro.PeriodoSelecionado),
			registro.DataInicial,
			registro.DataFinal,
			utils.FormatFloat(registro.PercentualSobreBenchmark),
			utils.FormatFloat(registro.PercentualAcumuladoBenchmark),
			utils.FormatFloat(registro.PercentualAcumulado),
			utils.FormatFloat(registro.NominalAcumulado),
			formatInt64(registro.FinancialInstrumentFundValueHistoryID),
			formatInt(registro.FinancialInstrumentID),
			utils.FormatFloat(registro.QuotaValue),
			registro.FinancialInstrumentName,
			utils.FormatDate(registro.PositionDate),
			utils.FormatDate(registro.DataInicioPeriodo),
			utils.FormatDate(registro.DataFimPeriodo),
			strconv.Itoa(registro.TotalRegistrosBanco),
			utils.FormatFloat(registro.QuotaValueMin),
			utils.FormatFloat(registro.QuotaValueMax),
			utils.FormatFloat(registro.QuotaValueAvg),
		})
	}

	return escreverCSV(caminho, colunasCombinado, linhas)
}

// ExportarAPI grava o CSV somente com os registros achatados da API
func ExportarAPI(registros []domain.Rentabilidade, caminho string) (int, error) {
	ordenados := make([]domain.Rentabilidade, len(registros))
	copy(ordenados, registros)
	sort.SliceStable(ordenados, func(i, j int) bool {
		if ordenados[i].ID != ordenados[j].ID {
			return ordenados[i].ID < ordenados[j].ID
		}
		return ordenados[i].PeriodoSelecionado < ordenados[j].PeriodoSelecionado
	})

	linhas := make([][]string, 0, len(ordenados))
	for _, registro := range ordenados {
		linhas = append(linhas, []string{
			strconv.Itoa(registro.ID),
			strconv.Itoa(registro.PeriodoSelecionado),
			registro.DescricaoPeriodo,
			registro.DataInicial,
			registro.DataFinal,
			utils.FormatFloat(registro.PercentualSobreBenchmark),
			utils.FormatFloat(registro.PercentualAcumuladoBenchmark),
			utils.FormatFloat(registro.PercentualAcumulado),
			utils.FormatFloat(registro.NominalAcumulado),
		})
	}

	return escreverCSV(caminho, colunasAPI, linhas)
}

// ExportarBanco grava o CSV do histórico do banco com a rentabilidade derivada
func ExportarBanco(registros []domain.HistoricoPeriodo, caminho string) (int, error) {
	ordenados := make([]domain.HistoricoPeriodo, len(registros))
	copy(ordenados, registros)
	sort.SliceStable(ordenados, func(i, j int) bool {
		if ordenados[i].FinancialInstrumentID != ordenados[j].FinancialInstrumentID {
			return ordenados[i].FinancialInstrumentID < ordenados[j].FinancialInstrumentID
		}
		return ordenados[i].PeriodoSelecionado < ordenados[j].PeriodoSelecionado
	})

	linhas := make([][]string, 0, len(ordenados))
	for _, registro := range ordenados {
		linhas = append(linhas, []string{
			strconv.FormatInt(registro.FinancialInstrumentFundValueHistoryID, 10),
			strconv.Itoa(registro.FinancialInstrumentID),
			utils.FormatFloat(utils.FloatPtr(registro.QuotaValue)),
			registro.FinancialInstrumentName,
			utils.FormatDate(&registro.PositionDate),
			strconv.Itoa(registro.PeriodoSelecionado),
			registro.DescricaoPeriodo,
			utils.FormatDate(&registro.DataInicioPeriodo),
			utils.FormatDate(&registro.DataFimPeriodo),
			utils.FormatFloat(utils.FloatPtr(registro.Rentabilidade)),
			utils.FormatFloat(utils.FloatPtr(registro.RentabilidadeAcumulada)),
			utils.FormatFloat(utils.FloatPtr(registro.PorcentagemRentabilidadeAcumulada)),
		})
	}

	return escreverCSV(caminho, colunasBanco, linhas)
}

// ExportarComparacao grava o CSV de comparação API x banco
func ExportarComparacao(registros []domain.RegistroComparacao, caminho string) (int, error) {
	linhas := make([][]string, 0, len(registros))
	for _, registro := range registros {
		linhas = append(linhas, []string{
			strconv.Itoa(registro.ID),
			strconv.Itoa(registro.PeriodoSelecionado),
			registro.DescricaoPeriodo,
			utils.FormatFloat(registro.RentabilidadeAPI),
			utils.FormatFloat(registro.RentabilidadeBanco),
			utils.FormatFloat(registro.DiferencaAbsoluta),
			strconv.FormatBool(registro.DentroTolerancia),
			string(registro.Status),
		})
	}

	return escreverCSV(caminho, colunasComparacao, linhas)
}

// escreverCSV grava cabeçalho e linhas no caminho informado, criando os
// diretórios pais se necessário. Sobrescreve o arquivo a cada execução.
func escreverCSV(caminho string, cabecalho []string, linhas [][]string) (int, error) {
	if dir := filepath.Dir(caminho); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, &domain.ErroExportacao{Caminho: caminho, Causa: err}
		}
	}

	arquivo, err := os.Create(caminho)
	if err != nil {
		return 0, &domain.ErroExportacao{Caminho: caminho, Causa: err}
	}
	defer arquivo.Close()

	escritor := csv.NewWriter(arquivo)
	if err := escritor.Write(cabecalho); err != nil {
		return 0, &domain.ErroExportacao{Caminho: caminho, Causa: err}
	}

	for _, linha := range linhas {
		if err := escritor.Write(linha); err != nil {
			return 0, &domain.ErroExportacao{Caminho: caminho, Causa: err}
		}
	}

	escritor.Flush()
	if err := escritor.Error(); err != nil {
		return 0, &domain.ErroExportacao{Caminho: caminho, Causa: err}
	}

	log.L.WithFields(log.Fields{
		"arquivo":   caminho,
		"registros": len(linhas),
		"colunas":   len(cabecalho),
	}).Info("CSV exportado com sucesso")

	return len(linhas), nil
}

func formatInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func formatInt64(i *int64) string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(*i, 10)
}
