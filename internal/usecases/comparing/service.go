package comparing

import (
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"

	"github.com/vfg2006/rentabilidade-collector/internal/config"
	"github.com/vfg2006/rentabilidade-collector/internal/domain"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
)

// Service compara a rentabilidade acumulada reportada pela API com a
// recalculada a partir das cotas do banco, lendo os dois CSVs exportados.
type Service struct {
	tolerancia float64
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		tolerancia: cfg.Saida.ToleranciaComparacao,
	}
}

type chaveComparacao struct {
	id      int
	periodo int
}

// CompararArquivos carrega os CSVs da API e do banco e monta um registro de
// comparação para cada combinação (Id, Período) presente em qualquer uma das
// fontes. O valor de cada fonte é o último da chave: o percentual acumulado
// do fim do período.
func (s *Service) CompararArquivos(caminhoAPI, caminhoBanco string) ([]domain.RegistroComparacao, error) {
	dfAPI, err := carregarCSV(caminhoAPI)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar CSV da API")
	}

	dfBanco, err := carregarCSV(caminhoBanco)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar CSV do banco")
	}

	valoresAPI := ultimoValorPorChave(dfAPI, "Id", "PeriodoSelecionado", "PercentualAcumulado")
	valoresBanco := ultimoValorPorChave(dfBanco, "FinancialInstrumentId", "PeriodoSelecionado", "PorcentagemRentabilidadeAcumulada")

	chaves := make(map[chaveComparacao]struct{})
	for chave := range valoresAPI {
		chaves[chave] = struct{}{}
	}
	for chave := range valoresBanco {
		chaves[chave] = struct{}{}
	}

	log.L.WithFields(log.Fields{
		"chaves_api":   len(valoresAPI),
		"chaves_banco": len(valoresBanco),
		"combinacoes":  len(chaves),
	}).Info("Comparando rentabilidade API x banco")

	registros := make([]domain.RegistroComparacao, 0, len(chaves))
	for chave := range chaves {
		valorAPI, temAPI := valoresAPI[chave]
		valorBanco, temBanco := valoresBanco[chave]
		registros = append(registros, s.compararChave(chave, valorAPI, temAPI, valorBanco, temBanco))
	}

	sort.SliceStable(registros, func(i, j int) bool {
		if registros[i].ID != registros[j].ID {
			return registros[i].ID < registros[j].ID
		}
		return registros[i].PeriodoSelecionado < registros[j].PeriodoSelecionado
	})

	return registros, nil
}

func (s *Service) compararChave(
	chave chaveComparacao,
	valorAPI float64, temAPI bool,
	valorBanco float64, temBanco bool,
) domain.RegistroComparacao {
	registro := domain.RegistroComparacao{
		ID:                 chave.id,
		PeriodoSelecionado: chave.periodo,
		DescricaoPeriodo:   domain.DescricaoAPI(chave.periodo),
	}

	switch {
	case !temAPI && !temBanco:
		registro.Status = domain.ComparacaoSemDados
	case !temBanco:
		registro.RentabilidadeAPI = &valorAPI
		registro.Status = domain.ComparacaoSomenteAPI
	case !temAPI:
		registro.RentabilidadeBanco = &valorBanco
		registro.Status = domain.ComparacaoSomenteBanco
	default:
		diferenca := math.Abs(valorAPI - valorBanco)
		registro.RentabilidadeAPI = &valorAPI
		registro.RentabilidadeBanco = &valorBanco
		registro.DiferencaAbsoluta = &diferenca
		registro.DentroTolerancia = diferenca <= s.tolerancia
		if registro.DentroTolerancia {
			registro.Status = domain.ComparacaoIgual
		} else {
			registro.Status = domain.ComparacaoDivergente
		}
	}

	return registro
}

func carregarCSV(caminho string) (dataframe.DataFrame, error) {
	arquivo, err := os.Open(caminho)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer arquivo.Close()

	df := dataframe.ReadCSV(arquivo, dataframe.DefaultType("string"), dataframe.DetectTypes(false))
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}

	log.L.WithFields(log.Fields{
		"arquivo":   caminho,
		"registros": df.Nrow(),
	}).Info("CSV carregado para comparação")

	return df, nil
}

// ultimoValorPorChave varre o dataframe e guarda, por (id, período), o último
// valor numérico não vazio da coluna informada. As linhas dos CSVs vêm
// ordenadas por data, então o último valor é o do fim do período.
func ultimoValorPorChave(df dataframe.DataFrame, colunaID, colunaPeriodo, colunaValor string) map[chaveComparacao]float64 {
	valores := make(map[chaveComparacao]float64)

	nomes := make(map[string]bool, len(df.Names()))
	for _, nome := range df.Names() {
		nomes[nome] = true
	}
	if !nomes[colunaID] || !nomes[colunaPeriodo] || !nomes[colunaValor] {
		return valores
	}

	ids := df.Col(colunaID).Records()
	periodos := df.Col(colunaPeriodo).Records()
	brutos := df.Col(colunaValor).Records()

	for i := 0; i < df.Nrow(); i++ {
		id, err := strconv.Atoi(ids[i])
		if err != nil {
			continue
		}
		periodo, err := strconv.Atoi(periodos[i])
		if err != nil {
			continue
		}
		valor, err := strconv.ParseFloat(brutos[i], 64)
		if err != nil {
			continue
		}

		valores[chaveComparacao{id: id, periodo: periodo}] = valor
	}

	return valores
}
