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

package vegas21

import (
	"github.com/zintix-labs/vegas21/cards"
	"github.com/zintix-labs/vegas21/game"
)

// Action 玩家決策
type Action uint8

const (
	ActStand Action = iota
	ActHit
	ActDouble
)

func (a Action) String() string {
	switch a {
	case ActHit:
		return "hit"
	case ActDouble:
		return "double"
	default:
		return "stand"
	}
}

// Strategy 依可見牌面決定下一個動作
type Strategy interface {
	Decide(v game.TableView) Action
}

// BasicStrategy 不分牌版本的基本策略（莊家軟 17 停牌的標準表）。
// 不能加倍時，加倍改為要牌；軟 18 改為停牌。
type BasicStrategy struct{}

func (BasicStrategy) Decide(v game.TableView) Action {
	score := v.PlayerScore
	up := upValue(v.DealerUpCard)
	if v.PlayerHand.IsSoft() {
		return soft(score, up, v.CanDouble)
	}
	return hard(score, up, v.CanDouble)
}

func upValue(c cards.Card) int {
	if c.Rank == cards.Ace {
		return 11
	}
	return c.Value()
}

func hard(score, up int, canDouble bool) Action {
	switch {
	case score <= 8:
		return ActHit
	case score == 9:
		return double(up >= 3 && up <= 6, canDouble, ActHit)
	case score == 10:
		return double(up <= 9, canDouble, ActHit)
	case score == 11:
		return double(up <= 10, canDouble, ActHit)
	case score == 12:
		if up >= 4 && up <= 6 {
			return ActStand
		}
		return ActHit
	case score <= 16:
		if up <= 6 {
			return ActStand
		}
		return ActHit
	default:
		return ActStand
	}
}

func soft(score, up int, canDouble bool) Action {
	switch {
	case score <= 14:
		return double(up == 5 || up == 6, canDouble, ActHit)
	case score <= 16:
		return double(up >= 4 && up <= 6, canDouble, ActHit)
	case score == 17:
		return double(up >= 3 && up <= 6, canDouble, ActHit)
	case score == 18:
		if up >= 3 && up <= 6 {
			return double(true, canDouble, ActStand)
		}
		if up >= 9 {
			return ActHit
		}
		return ActStand
	default:
		return ActStand
	}
}

// double 表上要加倍時，不能加倍就退回 fallback。
func double(want, canDouble bool, fallback Action) Action {
	if want && canDouble {
		return ActDouble
	}
	if want {
		return fallback
	}
	return ActHit
}
