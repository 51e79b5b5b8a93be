package entity

// DatasetEntry is one intent of the conversation dataset.
type DatasetEntry struct {
	Intent                   string            `json:"intencao"`
	FunnelStage              string            `json:"etapa_funil"`
	Response                 string            `json:"resposta_ia"`
	SequentialQuoteResponses map[string]string `json:"respostas_sequenciais_cotacao,omitempty"`
}

type Dataset struct {
	Entries []DatasetEntry `json:"dataset"`
}
