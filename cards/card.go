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

// Package cards 定義撲克牌、整副牌（Deck）與無限牌靴（Shoe）。
package cards

import "strconv"

// Rank 牌面點數，Ace = 1 ... King = 13。
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Suit 花色
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var (
	Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}
	Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}
)

var suitSymbol = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
}

func (r Rank) Valid() bool { return r >= Ace && r <= King }

// String : A, 2..10, J, Q, K
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

// Value 回傳 21 點的牌值：數字牌為面值，J/Q/K 為 10，A 為 11（軟 A 調整前）。
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

func (s Suit) Valid() bool { return s <= Clubs }

func (s Suit) String() string {
	if str, ok := suitSymbol[s]; ok {
		return str
	}
	return "?"
}

// Card 為不可變的值型別。
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) Value() int { return c.Rank.Value() }

func (c Card) String() string { return c.Rank.String() + c.Suit.String() }

// ParseRank 解析 "A", "2".."10", "J", "Q", "K"（也接受 "T" 代表 10）。
func ParseRank(s string) (Rank, bool) {
	switch s {
	case "A", "a":
		return Ace, true
	case "J", "j":
		return Jack, true
	case "Q", "q":
		return Queen, true
	case "K", "k":
		return King, true
	case "T", "t":
		return Ten, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 10 {
		return 0, false
	}
	return Rank(n), true
}
