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

// Package dto 定義 HTTP 邊界的請求解碼與回應結構，把牌桌結果轉成對外 JSON。
package dto

import (
	"github.com/zintix-labs/vegas21/cards"
	"github.com/zintix-labs/vegas21/game"
	"github.com/zintix-labs/vegas21/ledger"
)

// Card 對外的牌面。Hidden 為 true 時代表莊家暗牌，其餘欄位留空。
type Card struct {
	Rank   string `json:"rank,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Value  int    `json:"value,omitempty"`
	Label  string `json:"label"`
	Hidden bool   `json:"hidden,omitempty"`
}

// HiddenCard 莊家暗牌
var HiddenCard = Card{Label: "??", Hidden: true}

func NewCard(c cards.Card) Card {
	return Card{
		Rank:  c.Rank.String(),
		Suit:  c.Suit.String(),
		Value: c.Value(),
		Label: c.String(),
	}
}

func NewCards(h game.Hand) []Card {
	out := make([]Card, len(h))
	for i, c := range h {
		out[i] = NewCard(c)
	}
	return out
}

// dealerShown 牌局進行中莊家只亮一張，另一張以暗牌表示。
func dealerShown(up cards.Card) []Card {
	return []Card{NewCard(up), HiddenCard}
}

type Settlement struct {
	RoundID     string `json:"round_id"`
	PlayerHand  []Card `json:"player_hand"`
	PlayerScore int    `json:"player_score"`
	DealerHand  []Card `json:"dealer_hand"`
	DealerScore int    `json:"dealer_score"`
	Outcome     string `json:"outcome"`
	Bet         int    `json:"bet"`
	Payout      int    `json:"payout"`
	Balance     int    `json:"balance"`
}

func NewSettlement(s game.Settlement) *Settlement {
	return &Settlement{
		RoundID:     s.RoundID,
		PlayerHand:  NewCards(s.PlayerHand),
		PlayerScore: s.PlayerScore,
		DealerHand:  NewCards(s.DealerFinalHand),
		DealerScore: s.DealerScore,
		Outcome:     s.Outcome.String(),
		Bet:         s.Bet,
		Payout:      s.Payout,
		Balance:     s.Balance,
	}
}

type DealResponse struct {
	Username     string      `json:"username"`
	RoundID      string      `json:"round_id"`
	PlayerHand   []Card      `json:"player_hand"`
	PlayerScore  int         `json:"player_score"`
	DealerUpCard Card        `json:"dealer_up_card"`
	DealerHand   []Card      `json:"dealer_hand"`
	Bet          int         `json:"bet"`
	State        string      `json:"state"`
	Settlement   *Settlement `json:"settlement,omitempty"`
}

// NewDealResponse 天生 21 點直接結算時，莊家整手牌會在 settlement 中揭露。
func NewDealResponse(username string, r game.DealResult) DealResponse {
	resp := DealResponse{
		Username:     username,
		RoundID:      r.RoundID,
		PlayerHand:   NewCards(r.PlayerHand),
		PlayerScore:  r.PlayerScore,
		DealerUpCard: NewCard(r.DealerUpCard),
		DealerHand:   dealerShown(r.DealerUpCard),
		Bet:          r.Bet,
		State:        r.State.String(),
	}
	if r.Settlement != nil {
		resp.Settlement = NewSettlement(*r.Settlement)
		resp.DealerHand = resp.Settlement.DealerHand
	}
	return resp
}

type HitResponse struct {
	Username    string      `json:"username"`
	DrawnCard   Card        `json:"drawn_card"`
	PlayerHand  []Card      `json:"player_hand"`
	PlayerScore int         `json:"player_score"`
	Bust        bool        `json:"bust"`
	State       string      `json:"state"`
	Settlement  *Settlement `json:"settlement,omitempty"`
}

func NewHitResponse(username string, r game.HitResult) HitResponse {
	resp := HitResponse{
		Username:    username,
		DrawnCard:   NewCard(r.DrawnCard),
		PlayerHand:  NewCards(r.PlayerHand),
		PlayerScore: r.PlayerScore,
		Bust:        r.PlayerScore > 21,
		State:       r.State.String(),
	}
	if r.Settlement != nil {
		resp.Settlement = NewSettlement(*r.Settlement)
	}
	return resp
}

type StandResponse struct {
	Username string `json:"username"`
	Settlement
}

func NewStandResponse(username string, s game.Settlement) StandResponse {
	return StandResponse{Username: username, Settlement: *NewSettlement(s)}
}

type DoubleResponse struct {
	Username           string      `json:"username"`
	DrawnCard          Card        `json:"drawn_card"`
	PlayerScore        int         `json:"player_score"`
	AdditionalBetTaken int         `json:"additional_bet_taken"`
	State              string      `json:"state"`
	Settlement         *Settlement `json:"settlement"`
}

func NewDoubleResponse(username string, r game.DoubleResult) DoubleResponse {
	return DoubleResponse{
		Username:           username,
		DrawnCard:          NewCard(r.DrawnCard),
		PlayerScore:        r.PlayerScore,
		AdditionalBetTaken: r.AdditionalBetTaken,
		State:              r.State.String(),
		Settlement:         NewSettlement(r.Settlement),
	}
}

// StateResponse 進行中牌局的可見狀態
type StateResponse struct {
	Username     string `json:"username"`
	RoundID      string `json:"round_id"`
	PlayerHand   []Card `json:"player_hand"`
	PlayerScore  int    `json:"player_score"`
	DealerUpCard Card   `json:"dealer_up_card"`
	DealerHand   []Card `json:"dealer_hand"`
	Bet          int    `json:"bet"`
	State        string `json:"state"`
	CanDouble    bool   `json:"can_double"`
}

func NewStateResponse(username string, v game.TableView) StateResponse {
	return StateResponse{
		Username:     username,
		RoundID:      v.RoundID,
		PlayerHand:   NewCards(v.PlayerHand),
		PlayerScore:  v.PlayerScore,
		DealerUpCard: NewCard(v.DealerUpCard),
		DealerHand:   dealerShown(v.DealerUpCard),
		Bet:          v.Bet,
		State:        v.State.String(),
		CanDouble:    v.CanDouble,
	}
}

// Account 帳戶（含淨輸贏）
type Account struct {
	Username string `json:"username"`
	Balance  int    `json:"balance"`
	Wagered  int    `json:"wagered"`
	Won      int    `json:"won"`
	Net      int    `json:"net"`
}

func NewAccount(a ledger.Account) Account {
	return Account{
		Username: a.Username,
		Balance:  a.Balance,
		Wagered:  a.Wagered,
		Won:      a.Won,
		Net:      a.Net(),
	}
}

type BalanceResponse struct {
	Username string `json:"username"`
	Balance  int    `json:"balance"`
}

type LeaderboardResponse struct {
	Players []Account `json:"players"`
}

func NewLeaderboard(accs []ledger.Account) LeaderboardResponse {
	out := LeaderboardResponse{Players: make([]Account, len(accs))}
	for i, a := range accs {
		out.Players[i] = NewAccount(a)
	}
	return out
}

// ErrorResponse 錯誤回應
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
