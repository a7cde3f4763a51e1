// README: Order shapes extracted from the assistant's structured reply block.
package chat

// LineItem is one pipe-delimited product line from the structured block.
// Specs are positional; missing trailing specs stay empty.
type LineItem struct {
	Category string
	Item     string
	Spec1    string
	Spec2    string
	Spec3    string
	Qty      string
	Unit     string
}

// ExtractedOrder is a fully validated order ready for persistence. Built at
// most once per chat turn and never mutated afterwards.
type ExtractedOrder struct {
	Items   []LineItem
	Address string
}
