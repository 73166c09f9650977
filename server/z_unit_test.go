// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/vegas21"
	"github.com/zintix-labs/vegas21/cards"
	"github.com/zintix-labs/vegas21/game"
	"github.com/zintix-labs/vegas21/sdk/core"
	"github.com/zintix-labs/vegas21/server/netsvr"
	"github.com/zintix-labs/vegas21/server/svrcfg"
)

// 每一局都是 玩家 7 8 / 莊家 9 10，下一張 5
func scriptedCasino(t *testing.T) *vegas21.Casino {
	t.Helper()
	src := func(*core.Core) *cards.Deck {
		cs := []cards.Card{
			{Rank: cards.Seven, Suit: cards.Hearts},
			{Rank: cards.Nine, Suit: cards.Spades},
			{Rank: cards.Eight, Suit: cards.Clubs},
			{Rank: cards.Ten, Suit: cards.Diamonds},
			{Rank: cards.Five, Suit: cards.Hearts},
		}
		return cards.NewDeckFrom(append(cs, cards.NewDeck().Cards()...)...)
	}
	c, err := vegas21.New(vegas21.WithSeed(1), vegas21.WithTableOptions(game.WithDeckSource(src)))
	if err != nil {
		t.Fatalf("new casino: %v", err)
	}
	return c
}

func newTestServer(t *testing.T) (*netsvr.ChiAdapter, *vegas21.Casino) {
	t.Helper()
	c := scriptedCasino(t)
	svr := netsvr.NewChiServer("127.0.0.1:0")
	if _, err := Assemble(&svrcfg.SvrCfg{Casino: c}, svr); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return svr, c
}

func call(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, rd))
	out := map[string]any{}
	if ct := w.Header().Get("Content-Type"); strings.HasPrefix(ct, "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid json %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, out
}

func TestAliceRoundOverHTTP(t *testing.T) {
	svr, _ := newTestServer(t)

	code, body := call(t, svr, http.MethodPost, "/v1/user/init", `{"username":"alice"}`)
	if code != http.StatusOK || body["balance"] != 1000.0 {
		t.Fatalf("init: %d %v", code, body)
	}

	code, body = call(t, svr, http.MethodPost, "/v1/blackjack/deal", `{"username":"alice","bet":50}`)
	if code != http.StatusOK || body["player_score"] != 15.0 || body["state"] != "playing" {
		t.Fatalf("deal: %d %v", code, body)
	}
	dealer := body["dealer_hand"].([]any)
	if dealer[1].(map[string]any)["hidden"] != true {
		t.Fatalf("hole card leaked: %v", dealer)
	}

	code, body = call(t, svr, http.MethodPost, "/v1/blackjack/hit", `{"username":"alice"}`)
	if code != http.StatusOK || body["player_score"] != 20.0 || body["state"] != "playing" {
		t.Fatalf("hit: %d %v", code, body)
	}

	code, body = call(t, svr, http.MethodGet, "/v1/blackjack/state?username=alice", "")
	if code != http.StatusOK || body["can_double"] != false || body["bet"] != 50.0 {
		t.Fatalf("state: %d %v", code, body)
	}

	code, body = call(t, svr, http.MethodPost, "/v1/blackjack/stand", `{"username":"alice"}`)
	if code != http.StatusOK || body["outcome"] != "player_win" || body["payout"] != 100.0 || body["balance"] != 1050.0 {
		t.Fatalf("stand: %d %v", code, body)
	}
	if body["dealer_score"] != 19.0 {
		t.Fatalf("expected dealer 19, got %v", body["dealer_score"])
	}

	code, body = call(t, svr, http.MethodPost, "/v1/blackjack/hit", `{"username":"alice"}`)
	if code != http.StatusNotFound || body["kind"] != "no_active_hand" {
		t.Fatalf("hit after settle: %d %v", code, body)
	}

	code, body = call(t, svr, http.MethodGet, "/v1/user/balance?username=alice", "")
	if code != http.StatusOK || body["balance"] != 1050.0 {
		t.Fatalf("balance: %d %v", code, body)
	}
}

func TestErrorStatuses(t *testing.T) {
	svr, _ := newTestServer(t)
	cases := []struct {
		method, path, body string
		status             int
		kind               string
	}{
		{http.MethodPost, "/v1/blackjack/deal", `{"username":"bob","bet":0}`, http.StatusBadRequest, "invalid_bet"},
		{http.MethodPost, "/v1/blackjack/deal", `{"username":"bob","bet":5000}`, http.StatusPaymentRequired, "insufficient_funds"},
		{http.MethodPost, "/v1/blackjack/double", `{"username":"bob"}`, http.StatusNotFound, "no_active_hand"},
		{http.MethodPost, "/v1/blackjack/deal", `{"username":"bob","bet":10}`, http.StatusOK, ""},
		{http.MethodPost, "/v1/blackjack/deal", `{"username":"bob","bet":10}`, http.StatusConflict, "session_already_active"},
		{http.MethodPost, "/v1/blackjack/hit", `{"username":"bob"}`, http.StatusOK, ""},
		{http.MethodPost, "/v1/blackjack/double", `{"username":"bob"}`, http.StatusConflict, "invalid_action"},
		{http.MethodPost, "/v1/blackjack/hit", `{"username":"bob","extra":1}`, http.StatusBadRequest, ""},
		{http.MethodGet, "/v1/leaderboard?n=zero", "", http.StatusBadRequest, ""},
		{http.MethodGet, "/v1/blackjack/deal", "", http.StatusMethodNotAllowed, ""},
	}
	for i, c := range cases {
		code, body := call(t, svr, c.method, c.path, c.body)
		if code != c.status {
			t.Fatalf("case %d %s %s: expected %d, got %d %v", i, c.method, c.path, c.status, code, body)
		}
		if c.kind != "" && body["kind"] != c.kind {
			t.Fatalf("case %d: expected kind %s, got %v", i, c.kind, body["kind"])
		}
	}
}

func TestAnonymousDefaultBet(t *testing.T) {
	svr, c := newTestServer(t)
	code, body := call(t, svr, http.MethodPost, "/v1/blackjack/deal", `{}`)
	if code != http.StatusOK || body["username"] != "Anonymous" || body["bet"] != float64(c.Rules().DefaultBet) {
		t.Fatalf("deal: %d %v", code, body)
	}
}

func TestTopUpLeaderboardStats(t *testing.T) {
	svr, _ := newTestServer(t)

	code, body := call(t, svr, http.MethodPost, "/v1/user/topup", `{"username":"carol"}`)
	if code != http.StatusOK || body["balance"] != 1500.0 {
		t.Fatalf("topup: %d %v", code, body)
	}

	call(t, svr, http.MethodPost, "/v1/blackjack/deal", `{"username":"alice","bet":50}`)
	call(t, svr, http.MethodPost, "/v1/blackjack/stand", `{"username":"alice"}`)

	code, body = call(t, svr, http.MethodGet, "/v1/leaderboard?n=5", "")
	players := body["players"].([]any)
	if code != http.StatusOK || len(players) != 2 {
		t.Fatalf("leaderboard: %d %v", code, body)
	}
	// 15 對 19 停牌輸 50
	if last := players[1].(map[string]any); last["username"] != "alice" || last["net"] != -50.0 {
		t.Fatalf("unexpected leaderboard order: %v", players)
	}

	code, body = call(t, svr, http.MethodGet, "/v1/blackjack/stats", "")
	summary := body["Summary"].(map[string]any)
	if code != http.StatusOK || summary["Hands"] != 1.0 {
		t.Fatalf("stats: %d %v", code, body)
	}

	w := httptest.NewRecorder()
	svr.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/blackjack/stats?format=text", nil))
	if !strings.Contains(w.Body.String(), "dealer_win") {
		t.Fatalf("text stats: %s", w.Body.String())
	}
}

func TestIndexHealthAndSim(t *testing.T) {
	svr, _ := newTestServer(t)

	code, body := call(t, svr, http.MethodGet, "/", "")
	if code != http.StatusOK || body["service"] != "vegas21" {
		t.Fatalf("index: %d %v", code, body)
	}
	found := false
	for _, r := range body["routes"].([]any) {
		if r.(map[string]any)["path"] == "/v1/blackjack/deal" {
			found = true
		}
	}
	if !found {
		t.Fatalf("deal route not listed: %v", body["routes"])
	}

	code, body = call(t, svr, http.MethodGet, "/health", "")
	if code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", code, body)
	}

	code, body = call(t, svr, http.MethodGet, "/v1/sim?hands=200&workers=2&seed=3", "")
	if code != http.StatusOK || body["seed"] != 3.0 {
		t.Fatalf("sim: %d %v", code, body)
	}
	if hands := body["stats"].(map[string]any)["Summary"].(map[string]any)["Hands"]; hands != 200.0 {
		t.Fatalf("expected 200 simulated hands, got %v", hands)
	}

	code, _ = call(t, svr, http.MethodPost, "/v1/sim", `{"hands":0}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero hands, got %d", code)
	}
}

func TestShutdownClosesCasino(t *testing.T) {
	c := scriptedCasino(t)
	a, err := Assemble(&svrcfg.SvrCfg{Casino: c}, netsvr.NewChiServer("127.0.0.1:0"))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.RunContext(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop")
	}
	if !c.Closed() || c.ClosedReason() != "server shutdown" {
		t.Fatalf("casino not closed: %q", c.ClosedReason())
	}

	if _, err := Assemble(&svrcfg.SvrCfg{Casino: c}, netsvr.NewChiServer("")); err == nil {
		t.Fatalf("closed casino must be rejected")
	}
}
