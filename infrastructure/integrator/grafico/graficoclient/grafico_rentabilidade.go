package graficoclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	graficodomain "github.com/vfg2006/rentabilidade-collector/infrastructure/integrator/grafico/domain"
	"github.com/vfg2006/rentabilidade-collector/internal/domain"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RespostaRequisicao carrega o payload decodificado junto com a chave que o
// originou e o número de tentativas gastas.
type RespostaRequisicao struct {
	ID         int
	Periodo    int
	Tentativas int
	Dados      *graficodomain.RespostaGrafico
}

// BuscarGrafico faz o GET de rentabilidade para uma chave (id, período), com
// os parâmetros fixos da carteira mais os variáveis. Falha de rede, timeout e
// status não-2xx contam tentativa; esgotadas as tentativas, retorna
// ErroTransporte e a chave é descartada pela varredura.
func (c *GraficoClient) BuscarGrafico(ctx context.Context, id int, periodo int) (*RespostaRequisicao, error) {
	endpoint, err := url.Parse(c.config.API.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL base")
	}

	// Parâmetros fixos da carteira mais os variáveis da chave
	query := endpoint.Query()
	query.Set("IdContaCorrente", c.config.API.IDContaCorrente)
	query.Set("ProdutoSelecionado", c.config.API.ProdutoSelecionado)
	query.Set("BenchmarkSelecionado", c.config.API.BenchmarkSelecionado)
	query.Set("MaximoPontosRetornados", c.config.API.MaximoPontosRetornados)
	query.Set("Id", strconv.Itoa(id))
	query.Set("PeriodoSelecionado", strconv.Itoa(periodo))
	endpoint.RawQuery = query.Encode()

	maxTentativas := c.config.API.MaxTentativas
	if maxTentativas < 1 {
		maxTentativas = 1
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"id":      id,
		"periodo": periodo,
	})

	var ultimoErro error
	tipoFalha := domain.FalhaRede

	for tentativa := 1; tentativa <= maxTentativas; tentativa++ {
		logger.WithField("tentativa", tentativa).
			Debug("Fazendo requisição de rentabilidade")

		resposta, err := c.executar(ctx, endpoint.String())
		if err == nil {
			resposta.ID = id
			resposta.Periodo = periodo
			resposta.Tentativas = tentativa
			return resposta, nil
		}

		ultimoErro = err
		if errors.As(err, new(*erroStatus)) {
			tipoFalha = domain.FalhaStatus
		} else {
			tipoFalha = domain.FalhaRede
		}

		logger.WithField("tentativa", tentativa).
			WithError(err).
			Warn("Requisição de rentabilidade falhou")

		// Aguardar antes da próxima tentativa
		if tentativa < maxTentativas {
			time.Sleep(c.config.API.IntervaloTentativas)
		}
	}

	return nil, &domain.ErroTransporte{
		Tipo:       tipoFalha,
		Tentativas: maxTentativas,
		Causa:      ultimoErro,
	}
}

// erroStatus marca resposta com status não-2xx, para distinguir de falha de rede
type erroStatus struct {
	status string
}

func (e *erroStatus) Error() string {
	return fmt.Sprintf("requisição falhou com status: %s", e.status)
}

func (c *GraficoClient) executar(ctx context.Context, endereco string) (*RespostaRequisicao, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endereco, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return nil, &erroStatus{status: resp.Status}
	}

	dados := &graficodomain.RespostaGrafico{}
	if err := json.NewDecoder(resp.Body).Decode(dados); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return &RespostaRequisicao{Dados: dados}, nil
}
