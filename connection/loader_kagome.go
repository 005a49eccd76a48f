package connection

import (
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"kanaime/kerr"
	"kanaime/model"
)

// SystemDictKind mirrors dict.SystemDictKind so OpenFromKagome can be
// pointed at the same asset dict.OpenSystemDictionary used.
type SystemDictKind int

const (
	IPADic SystemDictKind = iota
	UniDic
)

const (
	kagomeBaseCost int16 = 900
	kagomeMinCost  int16 = 0
)

// OpenFromKagome derives a POS-bucket connection matrix from bigram
// POS-transition frequency observed while tokenizing seedCorpus with
// kagome (the same tokenizer call dict.OpenSystemDictionary makes):
// transitions that co-occur more often get a lower cost, and bucket IDs
// come from model.POSBucket so the matrix stays self-consistent with the
// class IDs dict.OpenSystemDictionary assigns. In-range pairs never seen
// in the corpus are stored as penalty; IDs outside the matrix get penalty
// from Matrix.Cost.
func OpenFromKagome(kind SystemDictKind, seedCorpus []string, penalty int16) (*Matrix, error) {
	kg, err := newKagomeTokenizer(kind)
	if err != nil {
		return nil, err
	}

	dim := model.POSBucketCount + 1
	counts := make([]int32, dim*dim)

	for _, sentence := range seedCorpus {
		if sentence == "" {
			continue
		}
		toks := kg.Tokenize(sentence)
		for i := 1; i < len(toks); i++ {
			prev := model.POSBucket(toks[i-1].POS())
			cur := model.POSBucket(toks[i].POS())
			counts[int(prev)*dim+int(cur)]++
		}
	}

	buf := make([]int16, dim*dim)
	for i, c := range counts {
		if c == 0 {
			buf[i] = penalty
			continue
		}
		cost := kagomeBaseCost - int16(c)*15
		if cost < kagomeMinCost {
			cost = kagomeMinCost
		}
		buf[i] = cost
	}
	return &Matrix{dim: dim, buf: buf, penalty: penalty}, nil
}

func newKagomeTokenizer(kind SystemDictKind) (*tokenizer.Tokenizer, error) {
	var (
		kg  *tokenizer.Tokenizer
		err error
	)
	if kind == UniDic {
		kg, err = tokenizer.New(uni.Dict(), tokenizer.OmitBosEos())
	} else {
		kg, err = tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	}
	if err != nil {
		return nil, kerr.Wrap("connection.OpenFromKagome", kerr.IoCorrupted, err)
	}
	return kg, nil
}
