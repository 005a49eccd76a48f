package dict

import (
	"io"

	jmdict "github.com/yomidevs/jmdict-go"

	"kanaime/kerr"
	"kanaime/model"
)

// jmdictBaseCost is the cost assigned to a JMdict entry before the
// sense-count adjustment below; tuned so a "common" multi-sense entry
// undercuts a rare one-sense entry without reading any frequency
// information from the entry.
const jmdictBaseCost int16 = 600

// OpenFromJMdict loads a JMdict (or ENAMDICT, same XML shape) export from
// r and returns every (kanji, reading) pair as a Candidate, grounded
// directly on the teacher's LoadJMdict/convertJMdictEntry/normalizeJapanese
// (dictionary.go): read the whole document, build kanji/reading pairs per
// entry, assign a connection class from the entry's part-of-speech tags.
func OpenFromJMdict(r io.Reader) (*Dictionary, error) {
	jm, _, err := jmdict.LoadJmdict(r)
	if err != nil {
		return nil, kerr.Wrap("dict.OpenFromJMdict", kerr.IoCorrupted, err)
	}
	d := New()
	for _, entry := range jm.Entries {
		var pos []string
		for _, s := range entry.Sense {
			pos = append(pos, s.PartsOfSpeech...)
		}
		classID := model.POSBucket(pos)
		cost := jmdictBaseCost - int16(min(len(entry.Sense), 5))*20

		readings := make([]string, 0, len(entry.Readings))
		for _, rd := range entry.Readings {
			readings = append(readings, rd.Reading)
		}
		if len(entry.Kanji) == 0 {
			// Kana-only entry: the reading is also the surface.
			for _, reading := range readings {
				d.Insert(model.Candidate{
					Reading: reading, Surface: reading,
					Cost: cost, LeftID: classID, RightID: classID,
				})
			}
			continue
		}
		for _, kj := range entry.Kanji {
			for _, reading := range readings {
				d.Insert(model.Candidate{
					Reading: reading, Surface: kj.Expression,
					Cost: cost, LeftID: classID, RightID: classID,
				})
			}
		}
	}
	return d, nil
}
