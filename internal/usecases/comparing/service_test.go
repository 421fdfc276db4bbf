package comparing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/rentabilidade-collector/internal/config"
	"github.com/vfg2006/rentabilidade-collector/internal/domain"
	"github.com/vfg2006/rentabilidade-collector/pkg/log"
)

func escreverArquivo(t *testing.T, dir, nome, conteudo string) string {
	t.Helper()
	caminho := filepath.Join(dir, nome)
	require.NoError(t, os.WriteFile(caminho, []byte(conteudo), 0o644))
	return caminho
}

func novoComparadorDeTeste(tolerancia float64) *Service {
	log.SetupTestLogger()
	return NewService(&config.Config{
		Saida: config.Saida{ToleranciaComparacao: tolerancia},
	})
}

func TestCompararArquivosChavesEmAmbasAsFontes(t *testing.T) {
	dir := t.TempDir()

	caminhoAPI := escreverArquivo(t, dir, "api.csv",
		"Id,PeriodoSelecionado,DescricaoPeriodo,DataInicial,DataFinal,PercentualAcumulado\n"+
			"314,1,Na semana atual,2024-05-13,2024-05-14,1.0\n"+
			"314,1,Na semana atual,2024-05-13,2024-05-15,2.005\n"+
			"315,1,Na semana atual,2024-05-13,2024-05-15,5.0\n")

	caminhoBanco := escreverArquivo(t, dir, "banco.csv",
		"FinancialInstrumentId,PeriodoSelecionado,PositionDate,PorcentagemRentabilidadeAcumulada\n"+
			"314,1,2024-05-14,1.0\n"+
			"314,1,2024-05-15,2.01\n"+
			"315,1,2024-05-15,4.0\n")

	comparador := novoComparadorDeTeste(0.01)

	registros, err := comparador.CompararArquivos(caminhoAPI, caminhoBanco)

	require.NoError(t, err)
	require.Len(t, registros, 2)

	// Chave 314/1: o último valor de cada fonte, diferença dentro da tolerância
	igual := registros[0]
	assert.Equal(t, 314, igual.ID)
	assert.Equal(t, 1, igual.PeriodoSelecionado)
	assert.Equal(t, "Na semana atual", igual.DescricaoPeriodo)
	assert.Equal(t, 2.005, *igual.RentabilidadeAPI)
	assert.Equal(t, 2.01, *igual.RentabilidadeBanco)
	assert.True(t, igual.DentroTolerancia)
	assert.Equal(t, domain.ComparacaoIgual, igual.Status)

	divergente := registros[1]
	assert.Equal(t, 315, divergente.ID)
	assert.False(t, divergente.DentroTolerancia)
	assert.Equal(t, domain.ComparacaoDivergente, divergente.Status)
	assert.InDelta(t, 1.0, *divergente.DiferencaAbsoluta, 1e-9)
}

func TestCompararArquivosChavesSomenteEmUmaFonte(t *testing.T) {
	dir := t.TempDir()

	caminhoAPI := escreverArquivo(t, dir, "api.csv",
		"Id,PeriodoSelecionado,PercentualAcumulado\n"+
			"314,1,1.5\n")

	caminhoBanco := escreverArquivo(t, dir, "banco.csv",
		"FinancialInstrumentId,PeriodoSelecionado,PorcentagemRentabilidadeAcumulada\n"+
			"315,2,3.5\n")

	comparador := novoComparadorDeTeste(0.01)

	registros, err := comparador.CompararArquivos(caminhoAPI, caminhoBanco)

	require.NoError(t, err)
	require.Len(t, registros, 2)

	somenteAPI := registros[0]
	assert.Equal(t, 314, somenteAPI.ID)
	assert.Equal(t, domain.ComparacaoSomenteAPI, somenteAPI.Status)
	assert.Equal(t, 1.5, *somenteAPI.RentabilidadeAPI)
	assert.Nil(t, somenteAPI.RentabilidadeBanco)

	somenteBanco := registros[1]
	assert.Equal(t, 315, somenteBanco.ID)
	assert.Equal(t, domain.ComparacaoSomenteBanco, somenteBanco.Status)
	assert.Equal(t, 3.5, *somenteBanco.RentabilidadeBanco)
	assert.Nil(t, somenteBanco.RentabilidadeAPI)
}

func TestCompararArquivosIgnoraValoresVazios(t *testing.T) {
	dir := t.TempDir()

	// 314/1 só tem valores vazios na API: a chave fica somente no banco
	caminhoAPI := escreverArquivo(t, dir, "api.csv",
		"Id,PeriodoSelecionado,PercentualAcumulado\n"+
			"314,1,\n")

	caminhoBanco := escreverArquivo(t, dir, "banco.csv",
		"FinancialInstrumentId,PeriodoSelecionado,PorcentagemRentabilidadeAcumulada\n"+
			"314,1,2.0\n")

	comparador := novoComparadorDeTeste(0.01)

	registros, err := comparador.CompararArquivos(caminhoAPI, caminhoBanco)

	require.NoError(t, err)
	require.Len(t, registros, 1)
	assert.Equal(t, domain.ComparacaoSomenteBanco, registros[0].Status)
}

func TestCompararArquivosNoLimiteDaTolerancia(t *testing.T) {
	dir := t.TempDir()

	caminhoAPI := escreverArquivo(t, dir, "api.csv",
		"Id,PeriodoSelecionado,PercentualAcumulado\n"+
			"314,1,1.0\n")

	caminhoBanco := escreverArquivo(t, dir, "banco.csv",
		"FinancialInstrumentId,PeriodoSelecionado,PorcentagemRentabilidadeAcumulada\n"+
			"314,1,1.5\n")

	comparador := novoComparadorDeTeste(0.5)

	registros, err := comparador.CompararArquivos(caminhoAPI, caminhoBanco)

	require.NoError(t, err)
	require.Len(t, registros, 1)
	// Diferença exatamente igual à tolerância ainda conta como igual
	assert.True(t, registros[0].DentroTolerancia)
	assert.Equal(t, domain.ComparacaoIgual, registros[0].Status)
}

func TestCompararArquivosInexistente(t *testing.T) {
	dir := t.TempDir()

	caminhoBanco := escreverArquivo(t, dir, "banco.csv",
		"FinancialInstrumentId,PeriodoSelecionado,PorcentagemRentabilidadeAcumulada\n")

	comparador := novoComparadorDeTeste(0.01)

	_, err := comparador.CompararArquivos(filepath.Join(dir, "nao_existe.csv"), caminhoBanco)

	require.Error(t, err)
}
