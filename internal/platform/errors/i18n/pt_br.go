package i18n

var ptBRMessages = map[Code]string{
	CodeUnknown:               "Ocorreu um erro inesperado",
	CodeNotationInvalid:       "Formato de rolagem inválido: {{.Notation}} (perto da posição {{.Offset}})",
	CodeConfigOutOfRange:      "{{.Setting}} deve ser pelo menos 1, recebido {{.Value}}",
	CodeEvaluationUnsupported: "Esta rolagem não pode ser avaliada: {{.Kind}}",
	CodeComparisonInvalid:     "Operador de comparação desconhecido {{.Operator}}",
	CodeSeedOutOfRange:        "A semente {{.Seed}} está fora do intervalo",
}
