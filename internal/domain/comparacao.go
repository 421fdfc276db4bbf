package domain

// StatusComparacao classifica o resultado da comparação API x banco de uma chave
type StatusComparacao string

const (
	ComparacaoIgual        StatusComparacao = "Igual"
	ComparacaoDivergente   StatusComparacao = "Divergente"
	ComparacaoSomenteAPI   StatusComparacao = "SomenteAPI"
	ComparacaoSomenteBanco StatusComparacao = "SomenteBanco"
	ComparacaoSemDados     StatusComparacao = "SemDados"
)

// RegistroComparacao confronta, por chave (Id, Período), o percentual
// acumulado reportado pela API com a rentabilidade acumulada recalculada a
// partir das cotas do banco.
type RegistroComparacao struct {
	ID                 int
	PeriodoSelecionado int
	DescricaoPeriodo   string
	RentabilidadeAPI   *float64
	RentabilidadeBanco *float64
	DiferencaAbsoluta  *float64
	DentroTolerancia   bool
	Status             StatusComparacao
}
