package dict

import (
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"kanaime/kerr"
	"kanaime/model"
)

// SystemDictKind selects which kagome-dict asset OpenSystemDictionary
// tokenizes its seed corpus with.
type SystemDictKind int

const (
	IPADic SystemDictKind = iota
	UniDic
)

// systemDictBaseCost anchors the frequency-based cost scale; a surface
// seen n times in the seed corpus costs systemDictBaseCost − 30·n (770
// for a single occurrence), floored at systemDictMinCost.
const (
	systemDictBaseCost int16 = 800
	systemDictMinCost  int16 = 50
)

// OpenSystemDictionary builds a Dictionary by tokenizing seedCorpus with
// kagome — the exact call the teacher's tokenize.go makes
// (tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())) — and harvesting
// every (surface, reading) pair the tokenizer produces, rather than
// reaching into kagome-dict's internal morph/connection encoding (see
// DESIGN.md). Cost falls with the surface's occurrence count across the
// corpus;
// connection-class IDs come from model.POSBucket so they line up with
// connection.OpenFromKagome's bucket IDs.
func OpenSystemDictionary(kind SystemDictKind, seedCorpus []string) (*Dictionary, error) {
	kg, err := newKagomeTokenizer(kind)
	if err != nil {
		return nil, err
	}

	type agg struct {
		reading string
		classID int16
		count   int
	}
	counts := make(map[string]*agg) // keyed by surface

	for _, sentence := range seedCorpus {
		if sentence == "" {
			continue
		}
		for _, tok := range kg.Tokenize(sentence) {
			reading, ok := tok.Reading()
			if !ok || reading == "" || tok.Surface == "" {
				continue
			}
			reading = katakanaToHiragana(reading)
			a, exists := counts[tok.Surface]
			if !exists {
				a = &agg{reading: reading, classID: model.POSBucket(tok.POS())}
				counts[tok.Surface] = a
			}
			a.count++
		}
	}

	d := New()
	for surface, a := range counts {
		cost := systemDictBaseCost - int16(a.count)*30
		if cost < systemDictMinCost {
			cost = systemDictMinCost
		}
		d.Insert(model.Candidate{
			Reading: a.reading, Surface: surface,
			Cost: cost, LeftID: a.classID, RightID: a.classID,
		})
	}
	return d, nil
}

// katakanaToHiragana folds kagome's katakana Reading() output down to the
// hiragana every other reading in this package is keyed by, the same fold
// the teacher's tokenize.go runs before using a kagome reading.
func katakanaToHiragana(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 0x30A1 && r <= 0x30F6 {
			out = append(out, r-0x60)
		} else {
			out = append(out, r)
		}
	}
	return string(out)
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
		return nil, kerr.Wrap("dict.OpenSystemDictionary", kerr.IoCorrupted, err)
	}
	return kg, nil
}
