package utils

import "strconv"

// FormatFloat serializa um decimal para os arquivos de saída. Valores nulos
// viram string vazia.
func FormatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// FloatPtr é um auxiliar para construir ponteiros de decimais
func FloatPtr(f float64) *float64 {
	return &f
}
