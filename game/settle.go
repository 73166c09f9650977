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

import (
	"github.com/zintix-labs/vegas21/spec"
)

// Payout 終局結果對應的回補金額（含本金），注額已在發牌時扣除。
//
//	Blackjack             bet × 2.5
//	PlayerWin/DealerBust  bet × 2
//	Push                  bet × 1
//	DealerWin/Bust        0
func Payout(p spec.PayoutTable, o Outcome, bet int) int {
	switch o {
	case Blackjack:
		return p.Credit(bet, p.Blackjack)
	case PlayerWin, DealerBust:
		return p.Credit(bet, p.Win)
	case Push:
		return p.Credit(bet, p.Push)
	case DealerWin, Bust:
		return p.Credit(bet, p.Lose)
	default:
		return 0
	}
}

// compare 莊家補完牌後比牌
func compare(player, dealer Hand) Outcome {
	ps, ds := player.Score(), dealer.Score()
	switch {
	case ps > 21:
		return Bust
	case ds > 21:
		return DealerBust
	case ps > ds:
		return PlayerWin
	case ds > ps:
		return DealerWin
	default:
		return Push
	}
}

// naturals 發牌後檢查天生 21 點。
// 玩家天生 21 點直接結算；莊家也是天生 21 點則和局（不論是否偷看暗牌）。
// 開啟 peek 時，只有莊家天生 21 點也立即結算為莊家贏。
func naturals(player, dealer Hand, peek bool) (Outcome, bool) {
	pn, dn := player.IsNatural(), dealer.IsNatural()
	switch {
	case pn && dn:
		return Push, true
	case pn:
		return Blackjack, true
	case dn && peek:
		return DealerWin, true
	default:
		return NoOutcome, false
	}
}

// dealerShouldDraw 莊家 17 點以下補牌；hitSoft17 時軟 17 也補。
func dealerShouldDraw(h Hand, hitSoft17 bool) bool {
	s := h.Score()
	if s < spec.DealerStandsOn {
		return true
	}
	return hitSoft17 && s == spec.DealerStandsOn && h.IsSoft()
}
