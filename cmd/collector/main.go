package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rentabilidade-collector/infrastructure/database/postgres"
	"github.com/vfg2006/rentabilidade-collector/infrastructure/integrator/grafico"
	"github.com/vfg2006/rentabilidade-collector/infrastructure/integrator/grafico/graficoclient"
	"github.com/vfg2006/rentabilidade-collector/infrastructure/repository"
	"github.com/vfg2006/rentabilidade-collector/internal/config"
	"github.com/vfg2006/rentabilidade-collector/internal/exporter"
	"github.com/vfg2006/rentabilidade-collector/internal/usecases/collecting"
	"github.com/vfg2006/rentabilidade-collector/internal/usecases/comparing"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx, executionID := log.WithExecutionID(ctx)
	logger := log.ForContext(ctx)
	logger.WithField("execution_id", executionID).Info("Iniciando coletor de rentabilidade")

	// Falha rápida: sem banco alcançável a varredura nem começa
	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	historicoRepo := repository.NewFundHistoryRepository(pgConn, cfg.Database.QueryTimeout)

	graficoClient := graficoclient.NewClient(cfg)
	graficoIntegrator := grafico.New(cfg, graficoClient)

	coletor := collecting.NewService(cfg, graficoIntegrator, historicoRepo)

	resultado, err := coletor.Executar(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Erro durante a varredura de coleta")
	}

	// CSV da API
	totalAPI, err := exporter.ExportarAPI(resultado.API, cfg.Saida.ArquivoAPI)
	if err != nil {
		logger.WithError(err).Fatal("Erro ao exportar CSV da API")
	}

	// CSV do banco, com rentabilidade derivada da série de cotas
	historicos := comparing.CalcularRentabilidade(resultado.Banco)
	totalBanco, err := exporter.ExportarBanco(historicos, cfg.Saida.ArquivoBanco)
	if err != nil {
		logger.WithError(err).Fatal("Erro ao exportar CSV do banco")
	}

	// CSV combinado, ordenado por (Id, PeriodoSelecionado)
	totalCombinado, err := exporter.ExportarCombinado(resultado.Combinados, cfg.Saida.ArquivoCombinado)
	if err != nil {
		logger.WithError(err).Fatal("Erro ao exportar CSV combinado")
	}

	// Comparação API x banco é melhor esforço: falha não derruba a execução
	comparador := comparing.NewService(cfg)
	registrosComparacao, err := comparador.CompararArquivos(cfg.Saida.ArquivoAPI, cfg.Saida.ArquivoBanco)
	if err != nil {
		logger.WithError(err).Warn("Falha na comparação API x banco")
	} else {
		if _, err := exporter.ExportarComparacao(registrosComparacao, cfg.Saida.ArquivoComparacao); err != nil {
			logger.WithError(err).Warn("Falha ao exportar CSV de comparação")
		}
	}

	idsDistintos := make(map[int]struct{})
	periodosDistintos := make(map[int]struct{})
	for _, combinado := range resultado.Combinados {
		idsDistintos[combinado.ID] = struct{}{}
		periodosDistintos[combinado.PeriodoSelecionado] = struct{}{}
	}

	logger.WithFields(log.Fields{
		"registros_api":        totalAPI,
		"registros_banco":      totalBanco,
		"registros_combinados": totalCombinado,
		"ids_distintos":        len(idsDistintos),
		"periodos_distintos":   len(periodosDistintos),
		"arquivo_api":          cfg.Saida.ArquivoAPI,
		"arquivo_banco":        cfg.Saida.ArquivoBanco,
		"arquivo_combinado":    cfg.Saida.ArquivoCombinado,
	}).Info("Aplicação executada com sucesso")
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
