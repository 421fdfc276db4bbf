package graficoclient

import (
	"context"
	"crypto/tls"
	"net/http"

	"github.com/vfg2006/rentabilidade-collector/internal/config"
)

type Client interface {
	BuscarGrafico(ctx context.Context, id int, periodo int) (*RespostaRequisicao, error)
}

type GraficoClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente da API de rentabilidade.
// A verificação de certificado é desabilitada porque o endpoint local usa
// certificado autoassinado.
func NewClient(cfg *config.Config) Client {
	return &GraficoClient{
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		config: cfg,
	}
}
