package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"kanaime/config"
	"kanaime/connection"
	"kanaime/dict"
	"kanaime/history"
	"kanaime/model"
	"kanaime/neural"
	"kanaime/session"
	"kanaime/telemetry"
)

// seedCorpus stands in for the background text a real deployment would
// point OpenSystemDictionary/OpenFromKagome/NewLocalScorer at; kept tiny
// here so `go run main.go` stays simple, matching the teacher's own
// replace-a-CLI-flag-with-a-const-text shortcut.
var seedCorpus = []string{
	"今日は天気がいいです。",
	"明日も天気がいいでしょう。",
	"彼は橋を渡って箸を取りに行った。",
	"端の方に座ってください。",
}

func main() {
	telemetry.InitStderr(zerolog.InfoLevel)

	d, err := dict.OpenSystemDictionary(dict.IPADic, seedCorpus)
	if err != nil {
		fmt.Println("failed to build seed dictionary:", err)
		return
	}
	d.Insert(model.Candidate{Reading: "きょう", Surface: "今日", Cost: 50})
	d.Insert(model.Candidate{Reading: "はし", Surface: "橋", Cost: 100})
	d.Insert(model.Candidate{Reading: "はし", Surface: "箸", Cost: 120})
	d.Insert(model.Candidate{Reading: "はし", Surface: "端", Cost: 130})

	cfg := config.Default()

	conn, err := connection.OpenFromKagome(connection.IPADic, seedCorpus, cfg.ConnectionPenalty)
	if err != nil {
		fmt.Println("failed to build connection matrix:", err)
		return
	}

	h, err := history.New(cfg)
	if err != nil {
		fmt.Println("failed to open history:", err)
		return
	}

	scorer, err := neural.NewLocalScorer(seedCorpus)
	if err != nil {
		fmt.Println("failed to build local neural scorer:", err)
		return
	}

	sess := session.New(session.Options{
		Dict:    d,
		Conn:    conn,
		History: h,
		Neural:  scorer,
		Config:  cfg,
	})
	defer sess.Close()

	// Drive a short composition: type "kyou", request candidates, accept
	// the first one, commit it.
	for _, r := range "kyou" {
		logResponse(sess.HandleRune(r))
	}
	spaceResp := logResponse(sess.HandleKey(session.KeySpace, false))
	if spaceResp.NeedsCandidates {
		// Stand in for the caller's async merge dispatch: run it inline.
		entries, _ := d.Lookup(spaceResp.CandidateReading)
		logResponse(sess.ReceiveCandidates(sess.Generation(), spaceResp.CandidateReading, entries))
	}
	logResponse(sess.HandleKey(session.KeySpace, false))
	logResponse(sess.HandleKey(session.KeyReturn, false))

	if err := h.Close(); err != nil {
		fmt.Println("history still referenced, not closed:", err)
	}
}

func logResponse(r session.Response) session.Response {
	out, _ := json.MarshalIndent(r, "", "  ")
	fmt.Fprintln(os.Stdout, string(out))
	return r
}
