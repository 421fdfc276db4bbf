package domain

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RespostaGrafico é a resposta do endpoint de gráfico de rentabilidade da
// carteira. O corpo traz metadados de topo e o array Rentabilidades; só o
// array interessa à coleta.
type RespostaGrafico struct {
	Rentabilidades jsoniter.RawMessage `json:"Rentabilidades"`
}

// Rentabilidade é uma entrada do array Rentabilidades
type Rentabilidade struct {
	DataInicial                  string   `json:"DataInicial"`
	DataFinal                    string   `json:"DataFinal"`
	PercentualSobreBenchmark     *float64 `json:"PercentualSobreBenchmark"`
	PercentualAcumuladoBenchmark *float64 `json:"PercentualAcumuladoBenchmark"`
	PercentualAcumulado          *float64 `json:"PercentualAcumulado"`
	NominalAcumulado             *float64 `json:"NominalAcumulado"`
}

// ListaRentabilidades decodifica o array Rentabilidades. Campo ausente, vazio
// ou fora do formato de lista vira lista vazia: sem dados para a chave,
// que não é falha de transporte.
func (r *RespostaGrafico) ListaRentabilidades() []Rentabilidade {
	if len(r.Rentabilidades) == 0 {
		return nil
	}

	var rentabilidades []Rentabilidade
	if err := json.Unmarshal(r.Rentabilidades, &rentabilidades); err != nil {
		return nil
	}

	return rentabilidades
}
