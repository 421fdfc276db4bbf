package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vfg2006/rentabilidade-collector/internal/domain"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	API      API      `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Coleta   Coleta   `mapstructure:",squash"`
	Saida    Saida    `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// API agrupa a configuração do endpoint de rentabilidade (gráfico da carteira)
type API struct {
	URL                    string        `mapstructure:"api_url"`
	IDContaCorrente        string        `mapstructure:"api_id_conta_corrente"`
	ProdutoSelecionado     string        `mapstructure:"api_produto_selecionado"`
	BenchmarkSelecionado   string        `mapstructure:"api_benchmark_selecionado"`
	MaximoPontosRetornados string        `mapstructure:"api_maximo_pontos_retornados"`
	Timeout                time.Duration `mapstructure:"api_timeout"`
	MaxTentativas          int           `mapstructure:"api_max_tentativas"`
	IntervaloTentativas    time.Duration `mapstructure:"api_intervalo_tentativas"`
	IntervaloRequisicoes   time.Duration `mapstructure:"api_intervalo_requisicoes"`
}

type Database struct {
	DSN          string        `mapstructure:"-"`
	Driver       string        `mapstructure:"database_driver"`
	Password     string        `mapstructure:"database_password"`
	URL          string        `mapstructure:"database_url"`
	User         string        `mapstructure:"database_user"`
	QueryTimeout time.Duration `mapstructure:"database_query_timeout"`
}

// Coleta define a varredura fixa de IDs e períodos. As listas brutas chegam do
// ambiente como strings separadas por vírgula e são convertidas em NewConfig.
type Coleta struct {
	IDsBrutos      []string `mapstructure:"coleta_ids"`
	PeriodosBrutos []string `mapstructure:"coleta_periodos"`
	IDs            []int    `mapstructure:"-"`
	Periodos       []int    `mapstructure:"-"`
}

type Saida struct {
	ArquivoCombinado     string  `mapstructure:"saida_arquivo_combinado"`
	ArquivoAPI           string  `mapstructure:"saida_arquivo_api"`
	ArquivoBanco         string  `mapstructure:"saida_arquivo_banco"`
	ArquivoComparacao    string  `mapstructure:"saida_arquivo_comparacao"`
	ToleranciaComparacao float64 `mapstructure:"saida_tolerancia_comparacao"`
}

func SetDefaults() {
	viper.SetDefault("API_URL", "https://localhost:7278/carteira/rentabilidade/grafico")
	viper.SetDefault("API_ID_CONTA_CORRENTE", "5177807")
	viper.SetDefault("API_PRODUTO_SELECIONADO", "4")
	viper.SetDefault("API_BENCHMARK_SELECIONADO", "0")
	viper.SetDefault("API_MAXIMO_PONTOS_RETORNADOS", "365")
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("API_MAX_TENTATIVAS", 3)
	viper.SetDefault("API_INTERVALO_TENTATIVAS", "1s")     // espera entre tentativas da mesma chave
	viper.SetDefault("API_INTERVALO_REQUISICOES", "100ms") // pausa entre chaves para não sobrecarregar a API

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/platform?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_QUERY_TIMEOUT", "5m")

	viper.SetDefault("COLETA_IDS", "314,315,316,771,1103,1104,1105,1136,1138,1142,1143,1144,1145,1232,1246,1292")
	viper.SetDefault("COLETA_PERIODOS", "1,2,3,4,5,6,7,8")

	viper.SetDefault("SAIDA_ARQUIVO_COMBINADO", "dados_rentabilidade.csv")
	viper.SetDefault("SAIDA_ARQUIVO_API", "dados_rentabilidade_api.csv")
	viper.SetDefault("SAIDA_ARQUIVO_BANCO", "dados_rentabilidade_banco.csv")
	viper.SetDefault("SAIDA_ARQUIVO_COMPARACAO", "comparacao_rentabilidade.csv")
	viper.SetDefault("SAIDA_TOLERANCIA_COMPARACAO", 0.01)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.API.URL == "" {
		return nil, domain.NovoErroConfiguracao("API_URL não configurada")
	}

	config.Coleta.IDs, err = parseIntList(config.Coleta.IDsBrutos)
	if err != nil {
		return nil, domain.NovoErroConfiguracao(fmt.Sprintf("COLETA_IDS inválido: %v", err))
	}
	if len(config.Coleta.IDs) == 0 {
		return nil, domain.NovoErroConfiguracao("COLETA_IDS vazio")
	}

	config.Coleta.Periodos, err = parseIntList(config.Coleta.PeriodosBrutos)
	if err != nil {
		return nil, domain.NovoErroConfiguracao(fmt.Sprintf("COLETA_PERIODOS inválido: %v", err))
	}
	if len(config.Coleta.Periodos) == 0 {
		return nil, domain.NovoErroConfiguracao("COLETA_PERIODOS vazio")
	}

	// Falhar antes da varredura se algum período não tiver mapeamento no enum
	for _, periodo := range config.Coleta.Periodos {
		if _, err := domain.MapearPeriodo(periodo); err != nil {
			return nil, err
		}
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func parseIntList(valores []string) ([]int, error) {
	inteiros := make([]int, 0, len(valores))
	for _, valor := range valores {
		valor = strings.TrimSpace(valor)
		if valor == "" {
			continue
		}
		n, err := strconv.Atoi(valor)
		if err != nil {
			return nil, fmt.Errorf("valor %q não é um inteiro", valor)
		}
		inteiros = append(inteiros, n)
	}
	return inteiros, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
