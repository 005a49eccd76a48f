package romaji

// table maps a complete romaji sequence to its kana rendering. Entries are
// plain ASCII keys; Convert looks the pending input up against this table
// as a whole, in the style of a standard Hepburn-style IME romaji rule set
// (see hymkor-go-readline-skk's kana mode
// tables for the general shape of a hand-written rule map keyed by string).
var table = map[string]string{
	// vowels
	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
	// k-row
	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	// g-row
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"gya": "ぎゃ", "gyu": "ぎゅ", "gyo": "ぎょ",
	// s-row
	"sa": "さ", "shi": "し", "si": "し", "su": "す", "se": "せ", "so": "そ",
	"sha": "しゃ", "sya": "しゃ", "shu": "しゅ", "syu": "しゅ", "sho": "しょ", "syo": "しょ",
	// z-row
	"za": "ざ", "ji": "じ", "zi": "じ", "zu": "ず", "ze": "ぜ", "zo": "ぞ",
	"ja": "じゃ", "ju": "じゅ", "jo": "じょ",
	"jya": "じゃ", "jyu": "じゅ", "jyo": "じょ",
	// t-row
	"ta": "た", "chi": "ち", "ti": "ち", "tsu": "つ", "tu": "つ", "te": "て", "to": "と",
	"cha": "ちゃ", "tya": "ちゃ", "chu": "ちゅ", "tyu": "ちゅ", "cho": "ちょ", "tyo": "ちょ",
	// d-row
	"da": "だ", "di": "ぢ", "du": "づ", "de": "で", "do": "ど",
	"dya": "ぢゃ", "dyu": "ぢゅ", "dyo": "ぢょ",
	// n-row
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	// h-row
	"ha": "は", "hi": "ひ", "fu": "ふ", "hu": "ふ", "he": "へ", "ho": "ほ",
	"hya": "ひゃ", "hyu": "ひゅ", "hyo": "ひょ",
	// b-row
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"bya": "びゃ", "byu": "びゅ", "byo": "びょ",
	// p-row
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",
	"pya": "ぴゃ", "pyu": "ぴゅ", "pyo": "ぴょ",
	// m-row
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	"mya": "みゃ", "myu": "みゅ", "myo": "みょ",
	// y-row
	"ya": "や", "yu": "ゆ", "yo": "よ",
	// r-row
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	"rya": "りゃ", "ryu": "りゅ", "ryo": "りょ",
	// w-row
	"wa": "わ", "wi": "うぃ", "we": "うぇ", "wo": "を",
	// small kana
	"xtsu": "っ", "ltsu": "っ", "xtu": "っ", "ltu": "っ",
	"xya": "ゃ", "lya": "ゃ", "xyu": "ゅ", "lyu": "ゅ", "xyo": "ょ", "lyo": "ょ",
	"xa": "ぁ", "la": "ぁ", "xi": "ぃ", "li": "ぃ", "xu": "ぅ", "lu": "ぅ",
	"xe": "ぇ", "le": "ぇ", "xo": "ぉ", "lo": "ぉ",
	// n / nn: the bare "n" is both an exact match (ん) and a true prefix
	// of every n*-row kana above plus "nn" — Lookup reports it as
	// exact_and_prefix; Convert's glottal-collapse rule (spec.md §4.A)
	// resolves the ambiguity as more input or force-flush arrives.
	"n":  "ん",
	"nn": "ん",
	// punctuation
	"-": "ー", ".": "。", ",": "、",
}

// consonants lists the romaji letters that start a consonant row and can
// therefore be doubled to spell a sokuon (small tsu): "kka" -> "っか".
var consonants = map[byte]bool{
	'k': true, 'g': true, 's': true, 'z': true, 't': true, 'd': true,
	'h': true, 'b': true, 'p': true, 'm': true, 'r': true, 'c': true,
	'j': true, 'f': true,
}

func isConsonant(b byte) bool { return consonants[b] }
