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
	"strings"

	"github.com/zintix-labs/vegas21/cards"
)

// Hand 玩家或莊家的手牌，點數每次即時計算，不做快取。
type Hand []cards.Card

// Score 回傳最佳點數：A 先一律算 11，總和超過 21 時逐張把 A 降為 1。
// 爆牌時回傳 > 21 的硬點數，以 IsBust 判斷。
func (h Hand) Score() int {
	total, _ := h.score()
	return total
}

// IsSoft 是否仍有一張 A 以 11 計算
func (h Hand) IsSoft() bool {
	_, soft := h.score()
	return soft > 0
}

// IsNatural 兩張牌恰好 21 點（天生 21 點），與多張湊出的 21 點不同。
func (h Hand) IsNatural() bool {
	return len(h) == 2 && h.Score() == 21
}

func (h Hand) IsBust() bool { return h.Score() > 21 }

func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	return append(Hand(nil), h...)
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// score 回傳 (總點數, 仍以 11 計算的 A 數量)
func (h Hand) score() (int, int) {
	total, soft := 0, 0
	for _, c := range h {
		if c.Rank == cards.Ace {
			soft++
		}
		total += c.Value()
	}
	for total > 21 && soft > 0 {
		total -= 10
		soft--
	}
	return total, soft
}
