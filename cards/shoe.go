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

package cards

import (
	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/sdk/core"
)

// DefaultLowWater 剩餘張數低於此值時，下一次抽牌前換上新洗好的一副牌。
const DefaultLowWater = 10

// DeckSource 提供新的一副牌。預設為 NewShuffledDeck；測試可注入排好的牌。
type DeckSource func(c *core.Core) *Deck

// ShuffledSource 預設的 DeckSource
func ShuffledSource(c *core.Core) *Deck { return NewShuffledDeck(c) }

// Shoe 無限牌靴：低於水位即丟棄剩餘牌並換上新牌，換牌後不存在可延續的算牌資訊。
type Shoe struct {
	deck     *Deck
	core     *core.Core
	source   DeckSource
	lowWater int
	reshuf   int
}

// NewShoe 建立牌靴並立即取得第一副牌。lowWater < 0 視為 DefaultLowWater。
func NewShoe(c *core.Core, lowWater int, src DeckSource) *Shoe {
	if lowWater < 0 {
		lowWater = DefaultLowWater
	}
	if src == nil {
		src = ShuffledSource
	}
	s := &Shoe{core: c, source: src, lowWater: lowWater}
	s.deck = src(c)
	return s
}

// Draw 抽牌前先檢查水位，不足則換牌。
func (s *Shoe) Draw() (Card, error) {
	if s.deck == nil || s.deck.Len() < s.lowWater || s.deck.Len() == 0 {
		s.deck = s.source(s.core)
		s.reshuf++
		if s.deck == nil || s.deck.Len() == 0 {
			return Card{}, errs.New(errs.EmptyDeck, "deck source returned no cards")
		}
	}
	return s.deck.Draw()
}

// Remaining 目前這副牌剩餘張數
func (s *Shoe) Remaining() int {
	if s.deck == nil {
		return 0
	}
	return s.deck.Len()
}

// Reshuffles 建立後換牌的次數
func (s *Shoe) Reshuffles() int { return s.reshuf }

// Clone 複製牌靴；複本與原牌靴共用亂數核心與牌源，但牌列彼此獨立。
func (s *Shoe) Clone() *Shoe {
	cp := *s
	if s.deck != nil {
		cp.deck = s.deck.Clone()
	}
	return &cp
}
