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
	"time"

	"github.com/zintix-labs/vegas21/cards"
)

// Session 一位玩家進行中的一手牌。Session 獨占自己的牌靴與兩手牌。
type Session struct {
	Player     string
	RoundID    string
	PlayerHand Hand
	DealerHand Hand
	Bet        int // 已從帳本扣除的注額，加倍後為兩倍
	State      State
	Hit        bool // 是否已要過牌（加倍的前置條件）
	Doubled    bool
	CreatedAt  time.Time
	shoe       *cards.Shoe
}

// DealerUpCard 莊家明牌
func (s *Session) DealerUpCard() cards.Card {
	if len(s.DealerHand) == 0 {
		return cards.Card{}
	}
	return s.DealerHand[0]
}

// CanDouble 只有發牌後的第一個動作可以加倍
func (s *Session) CanDouble() bool {
	return s.State == Playing && !s.Hit && !s.Doubled && len(s.PlayerHand) == 2
}

// clone 動作都在複本上進行，成功後才寫回 store；失敗時原 session 不受影響。
func (s *Session) clone() *Session {
	cp := *s
	cp.PlayerHand = s.PlayerHand.Clone()
	cp.DealerHand = s.DealerHand.Clone()
	if s.shoe != nil {
		cp.shoe = s.shoe.Clone()
	}
	return &cp
}

func (s *Session) drawPlayer() (cards.Card, error) {
	c, err := s.shoe.Draw()
	if err != nil {
		return c, err
	}
	s.PlayerHand = append(s.PlayerHand, c)
	return c, nil
}

func (s *Session) drawDealer() (cards.Card, error) {
	c, err := s.shoe.Draw()
	if err != nil {
		return c, err
	}
	s.DealerHand = append(s.DealerHand, c)
	return c, nil
}
