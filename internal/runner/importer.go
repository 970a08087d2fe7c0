package runner

import (
	"strings"

	"earnsim/internal/models"
)

// ParseAnswers splits TSV lines of the form "symbol\tquarter\tanswer..."
// into one output per model column. Lines with the wrong column count are
// skipped, as are empty model names, empty cells and answers that do not
// start with an order keyword.
func ParseAnswers(lines []string, modelNames []string) []models.LLMOutput {
	var out []models.LLMOutput
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) != 2+len(modelNames) {
			continue
		}
		for i, model := range modelNames {
			if model == "" {
				continue
			}
			ans := fields[2+i]
			if ans == "" || !hasOrderPrefix(ans) {
				continue
			}
			out = append(out, models.LLMOutput{
				Key: models.RecordKey{
					Symbol:  fields[0],
					Quarter: fields[1],
					Model:   model,
				},
				Order: ans,
			})
		}
	}
	return out
}

func hasOrderPrefix(s string) bool {
	return strings.HasPrefix(s, "BUY") ||
		strings.HasPrefix(s, "SELL") ||
		strings.HasPrefix(s, "DO NOT TRADE")
}
