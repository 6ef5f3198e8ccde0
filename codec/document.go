package codec

import (
	"github.com/hupe1980/nnscan"
)

// BatchDocument is the document form of a batch.
type BatchDocument struct {
	Dim     int         `json:"dim" yaml:"dim"`
	Vectors [][]float32 `json:"vectors" yaml:"vectors"`
}

// NewBatchDocument copies b into a document.
func NewBatchDocument(b *nnscan.Batch) *BatchDocument {
	doc := &BatchDocument{Dim: b.Dim(), Vectors: make([][]float32, b.Len())}
	for i := range doc.Vectors {
		doc.Vectors[i] = append([]float32(nil), b.Vector(i)...)
	}
	return doc
}

// Batch validates the document and builds a batch from it. A Dim of zero
// takes the dimension from the first vector.
func (d *BatchDocument) Batch() (*nnscan.Batch, error) {
	if d.Dim != 0 && len(d.Vectors) > 0 && len(d.Vectors[0]) != d.Dim {
		return nil, &nnscan.ErrDimensionMismatch{Index: 0, Expected: d.Dim, Actual: len(d.Vectors[0])}
	}
	return nnscan.NewBatch(d.Vectors)
}

// MatchRecord is the most similar vector of one input.
type MatchRecord struct {
	Index       int     `json:"index" yaml:"index"`
	MostSimilar int     `json:"most_similar" yaml:"most_similar"`
	Similarity  float32 `json:"similarity" yaml:"similarity"`
}

// ResultDocument is the document form of a launch result.
type ResultDocument struct {
	Results []MatchRecord `json:"results" yaml:"results"`
}

// NewResultDocument copies res into a document.
func NewResultDocument(res *nnscan.Result) *ResultDocument {
	doc := &ResultDocument{Results: make([]MatchRecord, 0, res.Len())}
	for i, m := range res.Matches() {
		doc.Results = append(doc.Results, MatchRecord{Index: i, MostSimilar: m.Index, Similarity: m.Score})
	}
	return doc
}
