package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// FormatDate formata a data no padrão dos arquivos de saída (yyyy-mm-dd).
// Datas nulas viram string vazia, nunca coluna omitida.
func FormatDate(date *time.Time) string {
	if date == nil || date.IsZero() {
		return ""
	}
	return date.Format(time.DateOnly)
}
