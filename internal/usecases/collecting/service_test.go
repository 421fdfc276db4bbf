package collecting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	graficomocks "github.com/vfg2006/rentabilidade-collector/infrastructure/integrator/grafico/mocks"
	repomocks "github.com/vfg2006/rentabilidade-collector/infrastructure/repository/mocks"
	"github.com/vfg2006/rentabilidade-collector/internal/config"
	"github.com/vfg2006/rentabilidade-collector/internal/domain"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
)

var referenciaTeste = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func novoServiceDeTeste(
	cfg *config.Config,
	graficoService *graficomocks.MockIntegrator,
	historicoRepo *repomocks.MockFundHistoryRepository,
) *Service {
	log.SetupTestLogger()
	return &Service{
		cfg:            cfg,
		graficoService: graficoService,
		historicoRepo:  historicoRepo,
		agora:          func() time.Time { return referenciaTeste },
		espera:         func(time.Duration) {},
	}
}

func configDeTeste(ids, periodos []int) *config.Config {
	return &config.Config{
		API: config.API{
			IntervaloRequisicoes: 100 * time.Millisecond,
		},
		Coleta: config.Coleta{
			IDs:      ids,
			Periodos: periodos,
		},
	}
}

func TestExecutarVarreduraCompleta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graficoService := graficomocks.NewMockIntegrator(ctrl)
	historicoRepo := repomocks.NewMockFundHistoryRepository(ctrl)

	ids := []int{314, 315}
	periodos := []int{1, 2}

	janela := domain.JanelaDoPeriodo(domain.SemanaAtual, referenciaTeste)
	agregado := &domain.AgregadoHistorico{
		TotalRegistros: 1,
		QuotaValueMin:  floatPtr(10.5),
		QuotaValueMax:  floatPtr(10.5),
		QuotaValueAvg:  floatPtr(10.5),
		Registros: []domain.HistoricoFundo{
			{
				FinancialInstrumentFundValueHistoryID: 1,
				FinancialInstrumentID:                 314,
				QuotaValue:                            10.5,
				FinancialInstrumentName:               "FUNDO TESTE FIC FIM",
				PositionDate:                          time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, id := range ids {
		for _, periodo := range periodos {
			graficoService.EXPECT().
				BuscarRentabilidades(gomock.Any(), id, periodo).
				Return([]domain.Rentabilidade{
					{ID: id, PeriodoSelecionado: periodo, DataInicial: "2024-05-13", DataFinal: "2024-05-15"},
				}, nil)

			periodoInterno, err := domain.MapearPeriodo(periodo)
			require.NoError(t, err)
			historicoRepo.EXPECT().
				BuscarHistoricoPeriodo(gomock.Any(), id, periodoInterno, referenciaTeste).
				Return(janela, agregado, nil)
		}
	}

	service := novoServiceDeTeste(configDeTeste(ids, periodos), graficoService, historicoRepo)

	resultado, err := service.Executar(context.Background())

	require.NoError(t, err)
	assert.Len(t, resultado.Chaves, 4)
	assert.Len(t, resultado.Combinados, 4)
	assert.Len(t, resultado.API, 4)
	assert.Len(t, resultado.Banco, 4)
	for _, chave := range resultado.Chaves {
		assert.Equal(t, domain.ChaveSucesso, chave.Status)
		assert.Equal(t, 1, chave.Registros)
	}
}

func TestExecutarDescartaChaveComFalhaDeTransporte(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graficoService := graficomocks.NewMockIntegrator(ctrl)
	historicoRepo := repomocks.NewMockFundHistoryRepository(ctrl)

	janela := domain.JanelaDoPeriodo(domain.SemanaAtual, referenciaTeste)
	errTransporte := &domain.ErroTransporte{Tipo: domain.FalhaRede, Tentativas: 3}

	// Primeira chave falha no transporte: o banco nem é consultado
	graficoService.EXPECT().
		BuscarRentabilidades(gomock.Any(), 314, 1).
		Return(nil, errTransporte)

	// Segunda chave segue normalmente: a varredura não aborta
	graficoService.EXPECT().
		BuscarRentabilidades(gomock.Any(), 315, 1).
		Return([]domain.Rentabilidade{
			{ID: 315, PeriodoSelecionado: 1, DataInicial: "2024-05-13", DataFinal: "2024-05-15"},
		}, nil)
	historicoRepo.EXPECT().
		BuscarHistoricoPeriodo(gomock.Any(), 315, domain.SemanaAtual, referenciaTeste).
		Return(janela, domain.AgregadoVazio(), nil)

	service := novoServiceDeTeste(configDeTeste([]int{314, 315}, []int{1}), graficoService, historicoRepo)

	resultado, err := service.Executar(context.Background())

	require.NoError(t, err)
	require.Len(t, resultado.Chaves, 2)

	descartada := resultado.Chaves[0]
	assert.Equal(t, domain.ChaveFalhaTransporte, descartada.Status)
	assert.Equal(t, 0, descartada.Registros)
	assert.ErrorIs(t, descartada.Erro, errTransporte)

	// Apenas a chave que sobreviveu contribui registros
	require.Len(t, resultado.Combinados, 1)
	assert.Equal(t, 315, resultado.Combinados[0].ID)
	assert.Len(t, resultado.API, 1)
}

func TestExecutarDegradaChaveComFalhaDeBanco(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graficoService := graficomocks.NewMockIntegrator(ctrl)
	historicoRepo := repomocks.NewMockFundHistoryRepository(ctrl)

	graficoService.EXPECT().
		BuscarRentabilidades(gomock.Any(), 314, 2).
		Return([]domain.Rentabilidade{
			{ID: 314, PeriodoSelecionado: 2, DataInicial: "2024-05-01", DataFinal: "2024-05-15"},
		}, nil)

	errBanco := &domain.ErroBanco{Tipo: domain.FalhaConexao}
	historicoRepo.EXPECT().
		BuscarHistoricoPeriodo(gomock.Any(), 314, domain.MesAtual, referenciaTeste).
		Return(domain.JanelaPeriodo{}, nil, errBanco)

	service := novoServiceDeTeste(configDeTeste([]int{314}, []int{2}), graficoService, historicoRepo)

	resultado, err := service.Executar(context.Background())

	require.NoError(t, err)
	require.Len(t, resultado.Chaves, 1)
	assert.Equal(t, domain.ChaveBancoDegradado, resultado.Chaves[0].Status)

	// A chave segue com agregado vazio: o registro combinado existe, sem banco
	require.Len(t, resultado.Combinados, 1)
	combinado := resultado.Combinados[0]
	assert.Equal(t, 314, combinado.ID)
	assert.Equal(t, "2024-05-01", combinado.DataInicial)
	assert.Equal(t, 0, combinado.TotalRegistrosBanco)
	assert.Nil(t, combinado.QuotaValueAvg)
	assert.Empty(t, resultado.Banco)
}

func TestExecutarChaveSemDadosDaAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graficoService := graficomocks.NewMockIntegrator(ctrl)
	historicoRepo := repomocks.NewMockFundHistoryRepository(ctrl)

	graficoService.EXPECT().
		BuscarRentabilidades(gomock.Any(), 314, 8).
		Return([]domain.Rentabilidade{}, nil)

	janela := domain.JanelaDoPeriodo(domain.TrintaDias, referenciaTeste)
	historicoRepo.EXPECT().
		BuscarHistoricoPeriodo(gomock.Any(), 314, domain.TrintaDias, referenciaTeste).
		Return(janela, domain.AgregadoVazio(), nil)

	service := novoServiceDeTeste(configDeTeste([]int{314}, []int{8}), graficoService, historicoRepo)

	resultado, err := service.Executar(context.Background())

	require.NoError(t, err)
	require.Len(t, resultado.Chaves, 1)
	assert.Equal(t, domain.ChaveSemDadosAPI, resultado.Chaves[0].Status)

	// Mesmo sem dados da API a chave aparece na saída combinada
	require.Len(t, resultado.Combinados, 1)
	assert.Equal(t, 314, resultado.Combinados[0].ID)
	assert.Equal(t, 8, resultado.Combinados[0].PeriodoSelecionado)
}

func TestExecutarReportaPeriodoSemMapeamento(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graficoService := graficomocks.NewMockIntegrator(ctrl)
	historicoRepo := repomocks.NewMockFundHistoryRepository(ctrl)

	// Período fora do mapa: a API ainda responde, mas o banco nem é consultado
	graficoService.EXPECT().
		BuscarRentabilidades(gomock.Any(), 314, 99).
		Return([]domain.Rentabilidade{
			{ID: 314, PeriodoSelecionado: 99, DataInicial: "2024-05-13", DataFinal: "2024-05-15"},
		}, nil)

	service := novoServiceDeTeste(configDeTeste([]int{314}, []int{99}), graficoService, historicoRepo)

	resultado, err := service.Executar(context.Background())

	require.NoError(t, err)
	require.Len(t, resultado.Chaves, 1)

	chave := resultado.Chaves[0]
	assert.Equal(t, domain.ChavePeriodoInvalido, chave.Status)
	assert.Equal(t, 0, chave.Registros)

	var errConfig *domain.ErroConfiguracao
	assert.ErrorAs(t, chave.Erro, &errConfig)

	// O retorno da API já tinha sido acumulado antes do mapeamento
	assert.Len(t, resultado.API, 1)
	assert.Empty(t, resultado.Banco)
	assert.Empty(t, resultado.Combinados)
}

func TestExecutarPausaEntreChaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graficoService := graficomocks.NewMockIntegrator(ctrl)
	historicoRepo := repomocks.NewMockFundHistoryRepository(ctrl)

	janela := domain.JanelaDoPeriodo(domain.SemanaAtual, referenciaTeste)
	for _, id := range []int{314, 315, 316} {
		graficoService.EXPECT().
			BuscarRentabilidades(gomock.Any(), id, 1).
			Return([]domain.Rentabilidade{}, nil)
		historicoRepo.EXPECT().
			BuscarHistoricoPeriodo(gomock.Any(), id, domain.SemanaAtual, referenciaTeste).
			Return(janela, domain.AgregadoVazio(), nil)
	}

	service := novoServiceDeTeste(configDeTeste([]int{314, 315, 316}, []int{1}), graficoService, historicoRepo)

	var pausas []time.Duration
	service.espera = func(d time.Duration) { pausas = append(pausas, d) }

	_, err := service.Executar(context.Background())

	require.NoError(t, err)
	// Sem pausa depois da última chave
	require.Len(t, pausas, 2)
	for _, pausa := range pausas {
		assert.Equal(t, 100*time.Millisecond, pausa)
	}
}
