package collecting

import (
	"context"
	"time"

	"github.com/vfg2006/rentabilidade-collector/infrastructure/integrator/grafico"
	"github.com/vfg2006/rentabilidade-collector/infrastructure/repository"
	"github.com/vfg2006/rentabilidade-collector/internal/config"
	"github.com/vfg2006/rentabilidade-collector/internal/domain"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
)

// Service orquestra a varredura completa de IDs x períodos: consulta a API,
// mapeia o período, consulta o histórico no banco e combina os resultados.
type Service struct {
	cfg            *config.Config
	graficoService grafico.Integrator
	historicoRepo  repository.FundHistoryRepository

	// agora e espera são injetáveis para manter a varredura determinística em teste
	agora  func() time.Time
	espera func(time.Duration)
}

func NewService(
	cfg *config.Config,
	graficoService grafico.Integrator,
	historicoRepo repository.FundHistoryRepository,
) *Service {
	return &Service{
		cfg:            cfg,
		graficoService: graficoService,
		historicoRepo:  historicoRepo,
		agora:          time.Now,
		espera:         time.Sleep,
	}
}

// Executar percorre o produto cartesiano de IDs e períodos, uma chave por vez.
// A falha de transporte de uma chave descarta apenas aquela chave; a falha de
// banco degrada a chave para agregado vazio. Nenhuma das duas aborta a
// varredura.
func (s *Service) Executar(ctx context.Context) (*domain.ResultadoColeta, error) {
	ids := s.cfg.Coleta.IDs
	periodos := s.cfg.Coleta.Periodos

	totalChaves := len(ids) * len(periodos)
	chaveAtual := 0

	logger := log.ForContext(ctx)
	logger.WithFields(log.Fields{
		"ids":      len(ids),
		"periodos": len(periodos),
		"total":    totalChaves,
	}).Info("Iniciando coleta de dados de rentabilidade")

	resultado := &domain.ResultadoColeta{
		Combinados: make([]domain.RegistroCombinado, 0, totalChaves),
		API:        make([]domain.Rentabilidade, 0, totalChaves),
		Banco:      make([]domain.HistoricoPeriodo, 0),
		Chaves:     make([]domain.ResultadoChave, 0, totalChaves),
	}

	for _, id := range ids {
		for _, periodo := range periodos {
			chaveAtual++
			logger.WithFields(log.Fields{
				"progresso": chaveAtual,
				"total":     totalChaves,
				"id":        id,
				"periodo":   periodo,
			}).Info("Processando chave da varredura")

			desfecho := s.processarChave(ctx, id, periodo, resultado)
			resultado.Chaves = append(resultado.Chaves, desfecho)

			// Pausa entre requisições para não sobrecarregar a API
			if chaveAtual < totalChaves {
				s.espera(s.cfg.API.IntervaloRequisicoes)
			}
		}
	}

	s.logResumo(logger, resultado)
	return resultado, nil
}

// processarChave executa o pipeline de uma chave: transporte, mapeamento do
// período, consulta de histórico e combinação.
func (s *Service) processarChave(
	ctx context.Context,
	id int,
	periodo int,
	resultado *domain.ResultadoColeta,
) domain.ResultadoChave {
	logger := log.ForContext(ctx).WithFields(log.Fields{"id": id, "periodo": periodo})

	rentabilidades, err := s.graficoService.BuscarRentabilidades(ctx, id, periodo)
	if err != nil {
		logger.WithError(err).Error("Chave descartada após esgotar tentativas na API")
		return domain.ResultadoChave{ID: id, Periodo: periodo, Status: domain.ChaveFalhaTransporte, Erro: err}
	}

	resultado.API = append(resultado.API, rentabilidades...)

	// O mapeamento é validado na configuração; falhar aqui é erro de programação
	periodoInterno, err := domain.MapearPeriodo(periodo)
	if err != nil {
		logger.WithError(err).Error("Período sem mapeamento para o enum interno")
		return domain.ResultadoChave{ID: id, Periodo: periodo, Status: domain.ChavePeriodoInvalido, Erro: err}
	}

	status := domain.ChaveSucesso
	if len(rentabilidades) == 0 {
		status = domain.ChaveSemDadosAPI
	}

	janela, agregado, err := s.historicoRepo.BuscarHistoricoPeriodo(ctx, id, periodoInterno, s.agora())
	if err != nil {
		// Falha de banco não tem retry: a chave segue com agregado vazio
		logger.WithError(err).Error("Falha ao consultar histórico, chave segue com agregado vazio")
		agregado = domain.AgregadoVazio()
		status = domain.ChaveBancoDegradado
	}

	resultado.Banco = append(resultado.Banco, etiquetarHistorico(periodo, periodoInterno, janela, agregado)...)

	combinados := Combinar(id, periodo, rentabilidades, janela, agregado)
	resultado.Combinados = append(resultado.Combinados, combinados...)

	logger.WithFields(log.Fields{
		"status":    string(status),
		"registros": len(combinados),
	}).Debug("Chave processada")

	return domain.ResultadoChave{
		ID:        id,
		Periodo:   periodo,
		Status:    status,
		Registros: len(combinados),
	}
}

// etiquetarHistorico projeta as linhas de histórico de uma chave com o
// período da varredura e a janela calculada. O período gravado é o da API
// (1-8), para que a comparação API x banco alinhe as duas fontes.
func etiquetarHistorico(
	periodo int,
	periodoInterno domain.EPeriodo,
	janela domain.JanelaPeriodo,
	agregado *domain.AgregadoHistorico,
) []domain.HistoricoPeriodo {
	if agregado == nil || len(agregado.Registros) == 0 {
		return nil
	}

	historicos := make([]domain.HistoricoPeriodo, 0, len(agregado.Registros))
	for _, registro := range agregado.Registros {
		historicos = append(historicos, domain.HistoricoPeriodo{
			HistoricoFundo:     registro,
			PeriodoSelecionado: periodo,
			DescricaoPeriodo:   periodoInterno.Nome(),
			DataInicioPeriodo:  janela.DataInicioPeriodo,
			DataFimPeriodo:     janela.DataFimPeriodo,
		})
	}

	return historicos
}

func (s *Service) logResumo(logger log.Logger, resultado *domain.ResultadoColeta) {
	contagem := map[domain.StatusChave]int{}
	for _, chave := range resultado.Chaves {
		contagem[chave.Status]++
	}

	logger.WithFields(log.Fields{
		"chaves":               len(resultado.Chaves),
		"sucesso":              contagem[domain.ChaveSucesso],
		"sem_dados_api":        contagem[domain.ChaveSemDadosAPI],
		"falha_transporte":     contagem[domain.ChaveFalhaTransporte],
		"banco_degradado":      contagem[domain.ChaveBancoDegradado],
		"periodo_invalido":     contagem[domain.ChavePeriodoInvalido],
		"registros_api":        len(resultado.API),
		"registros_banco":      len(resultado.Banco),
		"registros_combinados": len(resultado.Combinados),
	}).Info("Coleta de dados concluída")
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(i int) *int {
	return &i
}

func int64Ptr(i int64) *int64 {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}
