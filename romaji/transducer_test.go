package romaji

import "testing"

// typeString simulates a user typing s one rune at a time, mirroring how
// session.HandleRune drives Convert: each keystroke is appended to pending
// and Convert is called with force=false, same as live composition.
func typeString(s string) (composed, pending string) {
	for _, r := range s {
		composed, pending = Convert(composed, pending+string(r), false)
	}
	return composed, pending
}

func TestConvert_BareNGlottalCollapse(t *testing.T) {
	// spec.md §4.A: a bare "n" collapses to ん as soon as the following
	// input is a consonant that cannot extend it into a y-row kana, even
	// before the caller forces a flush.
	composed, pending := typeString("konb")
	if composed != "こん" || pending != "b" {
		t.Fatalf("konb: got composed=%q pending=%q, want こん/b", composed, pending)
	}

	composed, pending = typeString("kand")
	if composed != "かん" || pending != "d" {
		t.Fatalf("kand: got composed=%q pending=%q, want かん/d", composed, pending)
	}
}

func TestConvert_KonbanFullWord(t *testing.T) {
	composed, pending := typeString("konban")
	// Trailing "n" is still an exact_and_prefix match after the last
	// keystroke: the caller must force-flush to resolve it.
	if pending != "n" {
		t.Fatalf("konban: got pending=%q before flush, want \"n\"", pending)
	}
	composed, pending = Convert(composed, pending, true)
	if composed != "こんばん" || pending != "" {
		t.Fatalf("konban: got composed=%q pending=%q, want こんばん/\"\"", composed, pending)
	}
}

func TestConvert_KandaFullWord(t *testing.T) {
	composed, pending := typeString("kanda")
	if composed != "かんだ" || pending != "" {
		t.Fatalf("kanda: got composed=%q pending=%q, want かんだ/\"\"", composed, pending)
	}
}

func TestConvert_NihonFullWord(t *testing.T) {
	composed, pending := typeString("nihon")
	if pending != "n" {
		t.Fatalf("nihon: got pending=%q before flush, want \"n\"", pending)
	}
	composed, pending = Convert(composed, pending, true)
	if composed != "にほん" || pending != "" {
		t.Fatalf("nihon: got composed=%q pending=%q, want にほん/\"\"", composed, pending)
	}
}

func TestConvert_ZenbuFullWord(t *testing.T) {
	composed, pending := typeString("zenbu")
	if composed != "ぜんぶ" || pending != "" {
		t.Fatalf("zenbu: got composed=%q pending=%q, want ぜんぶ/\"\"", composed, pending)
	}
}

func TestConvert_NBeforeYRowStaysPending(t *testing.T) {
	// "ny" must stay pending toward a y-row kana ("nya"/"nyu"/"nyo"), not
	// collapse to the glottal ん, since 'y' extends it.
	composed, pending := typeString("ny")
	if composed != "" || pending != "ny" {
		t.Fatalf("ny: got composed=%q pending=%q, want \"\"/ny", composed, pending)
	}
	composed, pending = typeString("nya")
	if composed != "にゃ" || pending != "" {
		t.Fatalf("nya: got composed=%q pending=%q, want にゃ/\"\"", composed, pending)
	}
}

func TestConvert_SokuonDoubling(t *testing.T) {
	composed, pending := typeString("kippu")
	if composed != "きっぷ" || pending != "" {
		t.Fatalf("kippu: got composed=%q pending=%q, want きっぷ/\"\"", composed, pending)
	}
}

func TestConvert_NBeforePunctuationCollapses(t *testing.T) {
	// "n-" (n followed by the long-vowel mark romaji) is not a y-row
	// extension either, so it must collapse the same as "nb"/"nk"; the
	// remaining "-" is a complete spelling and is converted to ー.
	composed, pending := Convert("", "n-", false)
	if composed != "んー" || pending != "" {
		t.Fatalf("n-: got composed=%q pending=%q, want んー/\"\"", composed, pending)
	}
}

func TestLookup_TableRoundTrip(t *testing.T) {
	// Every table entry, force-converted from empty pending, must produce
	// exactly its kana with nothing left pending: Convert must never
	// mangle a complete, unambiguous romaji spelling.
	for romaji, kana := range table {
		composed, pending := Convert("", romaji, true)
		if composed != kana || pending != "" {
			t.Errorf("round trip %q: got composed=%q pending=%q, want %q/\"\"", romaji, composed, pending, kana)
		}
	}
}

func TestLookup_Classification(t *testing.T) {
	if tag, _ := Lookup(""); tag != None {
		t.Fatalf("empty string: got %v, want None", tag)
	}
	if tag, _ := Lookup("k"); tag != Prefix {
		t.Fatalf("\"k\": got %v, want Prefix", tag)
	}
	if tag, kana := Lookup("ka"); tag != Exact || kana != "か" {
		t.Fatalf("\"ka\": got %v/%q, want Exact/か", tag, kana)
	}
	if tag, kana := Lookup("n"); tag != ExactAndPrefix || kana != "ん" {
		t.Fatalf("\"n\": got %v/%q, want ExactAndPrefix/ん", tag, kana)
	}
	if tag, _ := Lookup("zz"); tag != None {
		t.Fatalf("\"zz\": got %v, want None", tag)
	}
}
