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

// Package game 實作 21 點牌桌：發牌、要牌、停牌、加倍、莊家自動補牌與結算。
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/vegas21/cards"
	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/ledger"
	"github.com/zintix-labs/vegas21/sdk/core"
	"github.com/zintix-labs/vegas21/spec"
	"github.com/zintix-labs/vegas21/stats"
)

// Table 21 點牌桌狀態機。
//
// 每個動作都在玩家的 keyed lock 內、對 session 複本操作；
// 帳本呼叫成功後才寫回 store，失敗時不留下任何部分結果。
type Table struct {
	rules  *spec.TableSetting
	ledger ledger.Ledger
	store  *SessionStore
	cf     core.PRNGFactory
	seeds  *core.SeedMaker
	source cards.DeckSource
	rec    *stats.Recorder
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*Table)

// WithPRNG 指定亂數工廠與 base seed；每手牌的牌靴由 base seed 派生子 seed。
func WithPRNG(cf core.PRNGFactory, seed int64) Option {
	return func(t *Table) {
		if cf != nil {
			t.cf = cf
		}
		t.seeds = core.NewSeedMaker(seed)
	}
}

// WithDeckSource 替換新牌來源（重播或測試用的排好的牌）。
func WithDeckSource(src cards.DeckSource) Option {
	return func(t *Table) { t.source = src }
}

func WithRecorder(r *stats.Recorder) Option {
	return func(t *Table) { t.rec = r }
}

func WithLogger(log *slog.Logger) Option {
	return func(t *Table) {
		if log != nil {
			t.log = log
		}
	}
}

func NewTable(rules *spec.TableSetting, l ledger.Ledger, opts ...Option) (*Table, error) {
	if rules == nil {
		rules = spec.Default()
	}
	if err := rules.Valid(); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errs.NewFatal("ledger is required")
	}
	t := &Table{
		rules:  rules,
		ledger: l,
		store:  NewSessionStore(),
		cf:     core.Default(),
		source: cards.ShuffledSource,
		log:    slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.seeds == nil {
		t.seeds = core.NewSeedMaker(core.RandomSeed())
	}
	if t.rec == nil {
		t.rec = stats.NewRecorder(rules.TableName)
	}
	return t, nil
}

func (t *Table) Rules() *spec.TableSetting { return t.rules }

func (t *Table) Recorder() *stats.Recorder { return t.rec }

// ActiveHands 進行中的牌局數
func (t *Table) ActiveHands() int { return t.store.Len() }

// ============================================================
// ** 玩家動作 **
// ============================================================

// Deal 開新局：檢查注額、扣款、依 P D P D 發牌並檢查天生 21 點。
// 玩家已有進行中的牌局時回傳 SessionAlreadyActive，不會覆蓋前一局。
func (t *Table) Deal(ctx context.Context, player string, bet int) (DealResult, error) {
	unlock := t.store.Lock(player)
	defer unlock()

	if t.store.Has(player) {
		return DealResult{}, errs.NewWithExtra(errs.SessionAlreadyActive, "hand already in progress", player)
	}
	if bet < t.rules.MinBet || bet > t.rules.MaxBet {
		return DealResult{}, errs.Newf(errs.InvalidBet, "bet %d out of [%d, %d]", bet, t.rules.MinBet, t.rules.MaxBet)
	}

	s := t.newSession(player, bet)
	for i := 0; i < 2; i++ {
		if _, err := s.drawPlayer(); err != nil {
			return DealResult{}, errs.Wrap(err, "deal player card")
		}
		if _, err := s.drawDealer(); err != nil {
			return DealResult{}, errs.Wrap(err, "deal dealer card")
		}
	}

	// 牌已在本地發好，扣款成功才算開局
	if err := t.ledger.Debit(ctx, player, bet); err != nil {
		return DealResult{}, err
	}

	res := DealResult{
		RoundID:      s.RoundID,
		PlayerHand:   s.PlayerHand.Clone(),
		PlayerScore:  s.PlayerHand.Score(),
		DealerUpCard: s.DealerUpCard(),
		Bet:          bet,
	}

	if outcome, done := naturals(s.PlayerHand, s.DealerHand, t.rules.DealerPeek); done {
		st, err := t.settle(ctx, s, outcome)
		if err != nil {
			t.refund(ctx, player, bet)
			return DealResult{}, err
		}
		res.State = GameOver
		res.Settlement = &st
		return res, nil
	}

	s.State = Playing
	if err := t.store.Create(s); err != nil {
		t.refund(ctx, player, bet)
		return DealResult{}, err
	}
	res.State = Playing
	t.log.Debug("blackjack.deal",
		slog.String("player", player),
		slog.String("round", s.RoundID),
		slog.Int("bet", bet),
		slog.String("hand", s.PlayerHand.String()),
	)
	return res, nil
}

// Hit 要一張牌。爆牌立即結算；到 21 點且開啟 AutoStandOn21 時自動停牌。
func (t *Table) Hit(ctx context.Context, player string) (HitResult, error) {
	unlock := t.store.Lock(player)
	defer unlock()

	s, err := t.playing(player, "hit")
	if err != nil {
		return HitResult{}, err
	}

	w := s.clone()
	c, err := w.drawPlayer()
	if err != nil {
		return HitResult{}, errs.Wrap(err, "hit")
	}
	w.Hit = true

	res := HitResult{
		DrawnCard:   c,
		PlayerHand:  w.PlayerHand.Clone(),
		PlayerScore: w.PlayerHand.Score(),
		State:       Playing,
	}

	var st Settlement
	switch {
	case w.PlayerHand.IsBust():
		st, err = t.settle(ctx, w, Bust)
	case res.PlayerScore == 21 && t.rules.AutoStandOn21:
		st, err = t.finish(ctx, w)
	default:
		t.store.put(w)
		return res, nil
	}
	if err != nil {
		return HitResult{}, err
	}
	res.State = GameOver
	res.Settlement = &st
	return res, nil
}

// Stand 停牌，莊家補牌並結算。
func (t *Table) Stand(ctx context.Context, player string) (Settlement, error) {
	unlock := t.store.Lock(player)
	defer unlock()

	s, err := t.playing(player, "stand")
	if err != nil {
		return Settlement{}, err
	}
	return t.finish(ctx, s.clone())
}

// Double 加倍：只能是發牌後的第一個動作。追加一份原注額、只抽一張牌，之後強制進入莊家回合並結算。
func (t *Table) Double(ctx context.Context, player string) (DoubleResult, error) {
	unlock := t.store.Lock(player)
	defer unlock()

	s, err := t.playing(player, "double")
	if err != nil {
		return DoubleResult{}, err
	}
	if !s.CanDouble() {
		return DoubleResult{}, errs.NewWithExtra(errs.InvalidAction, "double is only allowed as the first action", player)
	}

	w := s.clone()
	c, err := w.drawPlayer()
	if err != nil {
		return DoubleResult{}, errs.Wrap(err, "double")
	}

	additional := s.Bet
	if err := t.ledger.Debit(ctx, player, additional); err != nil {
		return DoubleResult{}, err
	}
	w.Bet += additional
	w.Doubled = true

	var st Settlement
	if w.PlayerHand.IsBust() {
		st, err = t.settle(ctx, w, Bust)
	} else {
		st, err = t.finish(ctx, w)
	}
	if err != nil {
		t.refund(ctx, player, additional)
		return DoubleResult{}, err
	}
	return DoubleResult{
		DrawnCard:          c,
		PlayerScore:        w.PlayerHand.Score(),
		AdditionalBetTaken: additional,
		State:              GameOver,
		Settlement:         st,
	}, nil
}

// Peek 回傳進行中牌局的可見狀態
func (t *Table) Peek(player string) (TableView, error) {
	unlock := t.store.Lock(player)
	defer unlock()

	s, err := t.store.Get(player)
	if err != nil {
		return TableView{}, err
	}
	return TableView{
		RoundID:      s.RoundID,
		PlayerHand:   s.PlayerHand.Clone(),
		PlayerScore:  s.PlayerHand.Score(),
		DealerUpCard: s.DealerUpCard(),
		Bet:          s.Bet,
		State:        s.State,
		CanDouble:    s.CanDouble(),
	}, nil
}

// ============================================================
// ** 內部流程 **
// ============================================================

func (t *Table) newSession(player string, bet int) *Session {
	c := core.New(t.cf.New(t.seeds.Next()))
	return &Session{
		Player:     player,
		RoundID:    uuid.NewString(),
		PlayerHand: make(Hand, 0, 6),
		DealerHand: make(Hand, 0, 6),
		Bet:        bet,
		State:      Betting,
		CreatedAt:  t.now(),
		shoe:       cards.NewShoe(c, t.rules.ReshuffleBelow, t.source),
	}
}

// playing 取得狀態為 Playing 的 session
func (t *Table) playing(player, action string) (*Session, error) {
	s, err := t.store.Get(player)
	if err != nil {
		return nil, err
	}
	if s.State != Playing {
		return nil, errs.NewWithExtra(errs.InvalidAction, action+" not allowed in state "+s.State.String(), player)
	}
	return s, nil
}

// finish 進入莊家回合：翻開暗牌，補牌到 17 點以上後比牌結算。整段不可中斷。
func (t *Table) finish(ctx context.Context, s *Session) (Settlement, error) {
	s.State = DealerTurn
	for dealerShouldDraw(s.DealerHand, t.rules.DealerHitsSoft17) {
		if _, err := s.drawDealer(); err != nil {
			return Settlement{}, errs.Wrap(err, "dealer draw")
		}
	}
	return t.settle(ctx, s, compare(s.PlayerHand, s.DealerHand))
}

// settle 派彩並刪除 session，每手牌恰好執行一次。
// 結算不受呼叫端取消影響：一旦進入結算就必須完成派彩。
func (t *Table) settle(ctx context.Context, s *Session, o Outcome) (Settlement, error) {
	ctx = context.WithoutCancel(ctx)
	payout := Payout(t.rules.Payouts, o, s.Bet)

	var (
		balance int
		err     error
	)
	if payout > 0 {
		balance, err = t.ledger.Credit(ctx, s.Player, payout)
	} else {
		balance, err = t.ledger.Balance(ctx, s.Player)
	}
	if err != nil {
		return Settlement{}, errs.Wrap(err, "settle")
	}

	s.State = GameOver
	t.store.Delete(s.Player)

	t.rec.Record(stats.HandRecord{Outcome: o.String(), Bet: s.Bet, Payout: payout, Doubled: s.Doubled})
	t.log.Info("blackjack.settle",
		slog.String("player", s.Player),
		slog.String("round", s.RoundID),
		slog.String("outcome", o.String()),
		slog.Int("player_score", s.PlayerHand.Score()),
		slog.Int("dealer_score", s.DealerHand.Score()),
		slog.Int("bet", s.Bet),
		slog.Int("payout", payout),
		slog.Int("balance", balance),
	)

	return Settlement{
		RoundID:         s.RoundID,
		PlayerHand:      s.PlayerHand.Clone(),
		PlayerScore:     s.PlayerHand.Score(),
		DealerFinalHand: s.DealerHand.Clone(),
		DealerScore:     s.DealerHand.Score(),
		Outcome:         o,
		Bet:             s.Bet,
		Payout:          payout,
		Balance:         balance,
	}, nil
}

// refund 結算失敗時退回本次扣款，盡力而為。
func (t *Table) refund(ctx context.Context, player string, amount int) {
	if _, err := t.ledger.Credit(context.WithoutCancel(ctx), player, amount); err != nil {
		t.log.Error("blackjack.refund", slog.String("player", player), slog.Int("amount", amount), slog.Any("err", err))
	}
}
