package domain

import "fmt"

// Tipos de falha de transporte ao consultar a API de rentabilidade
type TipoErroTransporte string

const (
	FalhaRede   TipoErroTransporte = "falha_rede"
	FalhaStatus TipoErroTransporte = "status_http"
)

// ErroTransporte indica que todas as tentativas contra a API foram esgotadas.
// A chave correspondente é descartada pela varredura, nunca a execução inteira.
type ErroTransporte struct {
	Tipo       TipoErroTransporte
	Tentativas int
	Causa      error
}

func (e *ErroTransporte) Error() string {
	return fmt.Sprintf("falha de transporte (%s) após %d tentativas: %v", e.Tipo, e.Tentativas, e.Causa)
}

func (e *ErroTransporte) Unwrap() error {
	return e.Causa
}

// Tipos de falha ao consultar o banco de dados
type TipoErroBanco string

const (
	FalhaConexao TipoErroBanco = "falha_conexao"
	FalhaQuery   TipoErroBanco = "falha_query"
)

// ErroBanco indica falha na consulta de histórico. Não há retry: a chave segue
// com agregado vazio e a varredura continua.
type ErroBanco struct {
	Tipo  TipoErroBanco
	Causa error
}

func (e *ErroBanco) Error() string {
	return fmt.Sprintf("falha de banco de dados (%s): %v", e.Tipo, e.Causa)
}

func (e *ErroBanco) Unwrap() error {
	return e.Causa
}

// ErroConfiguracao indica configuração ausente ou inválida. É fatal e impede
// o início da varredura.
type ErroConfiguracao struct {
	Mensagem string
}

func NovoErroConfiguracao(mensagem string) *ErroConfiguracao {
	return &ErroConfiguracao{Mensagem: mensagem}
}

func (e *ErroConfiguracao) Error() string {
	return "erro de configuração: " + e.Mensagem
}

// ErroExportacao indica falha de E/S ao gravar um arquivo de saída.
type ErroExportacao struct {
	Caminho string
	Causa   error
}

func (e *ErroExportacao) Error() string {
	return fmt.Sprintf("erro ao exportar %s: %v", e.Caminho, e.Causa)
}

func (e *ErroExportacao) Unwrap() error {
	return e.Causa
}
