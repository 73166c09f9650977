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

// State 牌局狀態：Betting（沒有進行中的牌局）→ Playing → DealerTurn → GameOver
type State uint8

const (
	Betting State = iota
	Playing
	DealerTurn
	GameOver
)

var stateName = map[State]string{
	Betting:    "betting",
	Playing:    "playing",
	DealerTurn: "dealer_turn",
	GameOver:   "game_over",
}

func (s State) String() string {
	if str, ok := stateName[s]; ok {
		return str
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome 終局結果
type Outcome uint8

const (
	NoOutcome Outcome = iota
	Blackjack
	PlayerWin
	DealerBust
	Push
	DealerWin
	Bust
)

// 名稱與 stats.OutcomeLabels 對齊
var outcomeName = map[Outcome]string{
	NoOutcome:  "",
	Blackjack:  "blackjack",
	PlayerWin:  "player_win",
	DealerBust: "dealer_bust",
	Push:       "push",
	DealerWin:  "dealer_win",
	Bust:       "bust",
}

func (o Outcome) String() string { return outcomeName[o] }

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// PlayerWins 玩家是否贏得本手（不含和局）
func (o Outcome) PlayerWins() bool {
	return o == Blackjack || o == PlayerWin || o == DealerBust
}
