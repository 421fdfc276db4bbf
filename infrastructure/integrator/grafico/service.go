package grafico

import (
	"context"

	graficodomain "github.com/vfg2006/rentabilidade-collector/infrastructure/integrator/grafico/domain"
	"github.com/vfg2006/rentabilidade-collector/infrastructure/integrator/grafico/graficoclient"
	"github.com/vfg2006/rentabilidade-collector/internal/config"
	"github.com/vfg2006/rentabilidade-collector/internal/domain"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
	"github.com/vfg2006/rentabilidade-collector/pkg/utils"
)

// Integrator expõe a consulta de rentabilidade já achatada para o domínio
type Integrator interface {
	BuscarRentabilidades(ctx context.Context, id int, periodo int) ([]domain.Rentabilidade, error)
}

type GraficoIntegrator struct {
	cfg    *config.Config
	Client graficoclient.Client
}

func New(cfg *config.Config, client graficoclient.Client) *GraficoIntegrator {
	return &GraficoIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// BuscarRentabilidades consulta a API para a chave (id, período) e achata o
// array Rentabilidades em registros de domínio etiquetados com a chave.
// Resposta sem dados retorna lista vazia com erro nulo: a ausência de dados é
// distinta de falha de transporte.
func (s *GraficoIntegrator) BuscarRentabilidades(ctx context.Context, id int, periodo int) ([]domain.Rentabilidade, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"id":      id,
		"periodo": periodo,
	})

	resposta, err := s.Client.BuscarGrafico(ctx, id, periodo)
	if err != nil {
		return nil, err
	}

	rentabilidades := resposta.Dados.ListaRentabilidades()
	if len(rentabilidades) == 0 {
		logger.Warn("Resposta sem registros de rentabilidade")
		return []domain.Rentabilidade{}, nil
	}

	registros := make([]domain.Rentabilidade, 0, len(rentabilidades))
	for _, rentabilidade := range rentabilidades {
		validarDatas(logger, rentabilidade)
		registros = append(registros, domain.Rentabilidade{
			ID:                           id,
			PeriodoSelecionado:           periodo,
			DescricaoPeriodo:             domain.DescricaoAPI(periodo),
			DataInicial:                  rentabilidade.DataInicial,
			DataFinal:                    rentabilidade.DataFinal,
			PercentualSobreBenchmark:     rentabilidade.PercentualSobreBenchmark,
			PercentualAcumuladoBenchmark: rentabilidade.PercentualAcumuladoBenchmark,
			PercentualAcumulado:          rentabilidade.PercentualAcumulado,
			NominalAcumulado:             rentabilidade.NominalAcumulado,
		})
	}

	logger.WithField("registros", len(registros)).
		Debug("Rentabilidades processadas com sucesso")

	return registros, nil
}

// validarDatas checa o formato das datas do registro. A API entrega datas no
// formato aaaa-mm-dd e o registro segue adiante mesmo malformado: o aviso
// existe para rastrear mudança de contrato na origem.
func validarDatas(logger log.Logger, rentabilidade graficodomain.Rentabilidade) {
	if _, err := utils.ParseDate(rentabilidade.DataInicial); err != nil {
		logger.WithError(err).
			WithField("data_inicial", rentabilidade.DataInicial).
			Warn("Data inicial fora do formato esperado")
	}
	if _, err := utils.ParseDate(rentabilidade.DataFinal); err != nil {
		logger.WithError(err).
			WithField("data_final", rentabilidade.DataFinal).
			Warn("Data final fora do formato esperado")
	}
}
