package folioapi

// Holding is one portfolio position as served by the backend.
type Holding struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name,omitempty"`
	Industry string  `json:"industry,omitempty"`
	Logo     string  `json:"logo,omitempty"`
	Price    float64 `json:"price"`
	Change   float64 `json:"change"`
	Quantity float64 `json:"quantity"`
}

// Value returns price times quantity.
func (h Holding) Value() float64 {
	return h.Price * h.Quantity
}

// SearchResult is a candidate symbol returned by the search endpoint.
type SearchResult struct {
	Symbol        string `json:"symbol"`
	Description   string `json:"description,omitempty"`
	DisplaySymbol string `json:"displaySymbol,omitempty"`
	Type          string `json:"type,omitempty"`
}

// DisplayName returns the description, or the symbol when there is none.
func (r SearchResult) DisplayName() string {
	if r.Description != "" {
		return r.Description
	}
	return r.Symbol
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Count  int            `json:"count"`
	Result []SearchResult `json:"result"`
}

type addRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type deleteRequest struct {
	Symbol string `json:"symbol"`
}

type updateRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}

// statusResponse is the acknowledgement body of the mutating endpoints.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
