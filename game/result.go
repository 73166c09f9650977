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

package game

import "github.com/zintix-labs/vegas21/cards"

// DealResult 發牌結果。莊家只露出明牌；若發牌即終局，Settlement 不為 nil。
type DealResult struct {
	RoundID      string
	PlayerHand   Hand
	PlayerScore  int
	DealerUpCard cards.Card
	Bet          int
	State        State
	Settlement   *Settlement
}

// Outcome 發牌即終局時的結果，否則為 NoOutcome。
func (r DealResult) Outcome() Outcome {
	if r.Settlement == nil {
		return NoOutcome
	}
	return r.Settlement.Outcome
}

// HitResult 要牌結果。爆牌（或 21 點自動停牌）時 Settlement 不為 nil。
type HitResult struct {
	DrawnCard   cards.Card
	PlayerHand  Hand
	PlayerScore int
	State       State
	Settlement  *Settlement
}

func (r HitResult) Outcome() Outcome {
	if r.Settlement == nil {
		return NoOutcome
	}
	return r.Settlement.Outcome
}

// DoubleResult 加倍結果；加倍後一定接著莊家補牌與結算。
type DoubleResult struct {
	DrawnCard          cards.Card
	PlayerScore        int
	AdditionalBetTaken int
	State              State
	Settlement         Settlement
}

// Settlement 結算結果，也是停牌（Stand）的回傳值。
type Settlement struct {
	RoundID         string
	PlayerHand      Hand
	PlayerScore     int
	DealerFinalHand Hand
	DealerScore     int
	Outcome         Outcome
	Bet             int
	Payout          int
	Balance         int
}

// TableView 進行中牌局的可見狀態（暗牌不揭露），供前端對帳。
type TableView struct {
	RoundID      string
	PlayerHand   Hand
	PlayerScore  int
	DealerUpCard cards.Card
	Bet          int
	State        State
	CanDouble    bool
}
