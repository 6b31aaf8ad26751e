package dataflows

// DataFlowInterface bundles the dataflow clients behind one handle so
// the interactive layer constructs them once.
type DataFlowInterface struct {
	Evidence *EvidenceClient
	Quotes   *QuoteClient
}

// NewDataFlowInterface creates all dataflow clients from one config.
func NewDataFlowInterface(config *Config) *DataFlowInterface {
	return &DataFlowInterface{
		Evidence: NewEvidenceClient(config),
		Quotes:   NewQuoteClient(config),
	}
}
