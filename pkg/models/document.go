package models

// Document is one flattened corpus row. Documents are immutable once loaded
// and live for a single session.
type Document struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Embedding is the fixed-length vector representation of a text.
type Embedding []float32

// RetrievedDocument is a Document returned by a nearest-neighbour search along
// with its squared Euclidean distance to the query.
type RetrievedDocument struct {
	Document
	Distance float32 `json:"distance"`
}

// DocumentTexts returns the text of each document, in order.
func DocumentTexts(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}
