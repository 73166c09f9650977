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

// DeckSize 一副牌 4 花色 × 13 點數
const DeckSize = 52

// Deck 有序的牌列，最上面一張為 cards[0]。
type Deck struct {
	cards []Card
}

// NewDeck 建立依花色、點數排序的完整一副牌。
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for _, s := range Suits {
		for _, r := range Ranks {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	return d
}

// NewShuffledDeck 以注入的亂數核心做 Fisher-Yates 洗牌，回傳新的一副牌。
func NewShuffledDeck(c *core.Core) *Deck {
	d := NewDeck()
	c.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// NewDeckFrom 以指定順序建立牌列（第一張先發），用於重播與測試。
func NewDeckFrom(cs ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), cs...)}
}

func (d *Deck) Len() int { return len(d.cards) }

// Cards 回傳剩餘牌的複本。
func (d *Deck) Cards() []Card { return append([]Card(nil), d.cards...) }

// Draw 移除並回傳最上面一張牌；空牌堆回傳 EmptyDeck（Fatal）。
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, errs.New(errs.EmptyDeck, "draw from empty deck")
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// Clone 複製牌列，複本的抽牌不影響原本的牌。
func (d *Deck) Clone() *Deck {
	return NewDeckFrom(d.cards...)
}
