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
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/zintix-labs/vegas21/cards"
	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/ledger"
	"github.com/zintix-labs/vegas21/sdk/core"
	"github.com/zintix-labs/vegas21/spec"
)

const alice = "alice"

func card(r cards.Rank) cards.Card { return cards.Card{Rank: r, Suit: cards.Spades} }

func hand(rs ...cards.Rank) Hand {
	h := make(Hand, 0, len(rs))
	for _, r := range rs {
		h = append(h, card(r))
	}
	return h
}

// scripted 依 P D P D 之後的順序排牌，後面補一副完整的牌讓水位不會觸發換牌。
func scripted(rs ...cards.Rank) cards.DeckSource {
	return func(*core.Core) *cards.Deck {
		cs := make([]cards.Card, 0, len(rs)+cards.DeckSize)
		for _, r := range rs {
			cs = append(cs, card(r))
		}
		cs = append(cs, cards.NewDeck().Cards()...)
		return cards.NewDeckFrom(cs...)
	}
}

func newTestTable(t *testing.T, rules *spec.TableSetting, start int, src cards.DeckSource) (*Table, *ledger.MemLedger) {
	t.Helper()
	l := ledger.NewMemLedger(start)
	opts := []Option{WithPRNG(core.Default(), 42)}
	if src != nil {
		opts = append(opts, WithDeckSource(src))
	}
	tb, err := NewTable(rules, l, opts...)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return tb, l
}

func balance(t *testing.T, l ledger.Ledger, id string) int {
	t.Helper()
	b, err := l.Balance(context.Background(), id)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return b
}

func TestHandScore(t *testing.T) {
	cases := []struct {
		name  string
		hand  Hand
		score int
		soft  bool
	}{
		{"A A 9", hand(cards.Ace, cards.Ace, cards.Nine), 21, true},
		{"A A 9 10", hand(cards.Ace, cards.Ace, cards.Nine, cards.Ten), 21, false},
		{"A A 9 K 5", hand(cards.Ace, cards.Ace, cards.Nine, cards.King, cards.Five), 26, false},
		{"A 6", hand(cards.Ace, cards.Six), 17, true},
		{"A 6 10", hand(cards.Ace, cards.Six, cards.Ten), 17, false},
		{"A A", hand(cards.Ace, cards.Ace), 12, true},
		{"K Q", hand(cards.King, cards.Queen), 20, false},
		{"empty", Hand{}, 0, false},
	}
	for _, c := range cases {
		if got := c.hand.Score(); got != c.score {
			t.Fatalf("%s: expected score %d, got %d", c.name, c.score, got)
		}
		if got := c.hand.IsSoft(); got != c.soft {
			t.Fatalf("%s: expected soft=%v, got %v", c.name, c.soft, got)
		}
	}
}

func TestHandNaturalAndBust(t *testing.T) {
	if !hand(cards.Ace, cards.King).IsNatural() {
		t.Fatalf("A K should be natural")
	}
	if hand(cards.Seven, cards.Seven, cards.Seven).IsNatural() {
		t.Fatalf("three-card 21 is not natural")
	}
	if !hand(cards.King, cards.Queen, cards.Two).IsBust() {
		t.Fatalf("22 should bust")
	}
	if hand(cards.Ace, cards.King, cards.Queen).IsBust() {
		t.Fatalf("A K Q is 21, not bust")
	}
}

func TestPayout(t *testing.T) {
	p := spec.Default().Payouts
	cases := []struct {
		o    Outcome
		bet  int
		want int
	}{
		{Blackjack, 10, 25},
		{Blackjack, 15, 37},
		{PlayerWin, 50, 100},
		{DealerBust, 30, 60},
		{Push, 40, 40},
		{DealerWin, 40, 0},
		{Bust, 40, 0},
	}
	for _, c := range cases {
		if got := Payout(p, c.o, c.bet); got != c.want {
			t.Fatalf("%s bet %d: expected %d, got %d", c.o, c.bet, c.want, got)
		}
	}
}

func TestDealerShouldDraw(t *testing.T) {
	if !dealerShouldDraw(hand(cards.Ten, cards.Six), false) {
		t.Fatalf("dealer must draw on 16")
	}
	if dealerShouldDraw(hand(cards.Ace, cards.Six), false) {
		t.Fatalf("dealer stands on soft 17 by default")
	}
	if !dealerShouldDraw(hand(cards.Ace, cards.Six), true) {
		t.Fatalf("H17 dealer must draw on soft 17")
	}
	if dealerShouldDraw(hand(cards.Ten, cards.Seven), true) {
		t.Fatalf("dealer stands on hard 17")
	}
}

func TestDealNaturals(t *testing.T) {
	cases := []struct {
		name    string
		deck    []cards.Rank
		outcome Outcome
		balance int
	}{
		{"player natural", []cards.Rank{cards.Ace, cards.Nine, cards.King, cards.Seven}, Blackjack, 1015},
		{"both natural", []cards.Rank{cards.Ace, cards.Ace, cards.King, cards.Queen}, Push, 1000},
		{"dealer natural", []cards.Rank{cards.Nine, cards.Ace, cards.Eight, cards.King}, DealerWin, 990},
	}
	for _, c := range cases {
		tb, l := newTestTable(t, nil, 1000, scripted(c.deck...))
		res, err := tb.Deal(context.Background(), alice, 10)
		if err != nil {
			t.Fatalf("%s: deal: %v", c.name, err)
		}
		if res.State != GameOver || res.Settlement == nil {
			t.Fatalf("%s: expected immediate settlement, got state %s", c.name, res.State)
		}
		if res.Outcome() != c.outcome {
			t.Fatalf("%s: expected %s, got %s", c.name, c.outcome, res.Outcome())
		}
		if got := balance(t, l, alice); got != c.balance || res.Settlement.Balance != c.balance {
			t.Fatalf("%s: expected balance %d, got %d (settlement %d)", c.name, c.balance, got, res.Settlement.Balance)
		}
		if tb.ActiveHands() != 0 {
			t.Fatalf("%s: terminal deal must not store a session", c.name)
		}
	}
}

func TestDealerNaturalWithoutPeek(t *testing.T) {
	rules := spec.Default()
	rules.DealerPeek = false
	tb, _ := newTestTable(t, rules, 1000, scripted(cards.Nine, cards.Ace, cards.Eight, cards.King))
	res, err := tb.Deal(context.Background(), alice, 10)
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	if res.State != Playing {
		t.Fatalf("without peek the hand continues, got %s", res.State)
	}
	st, err := tb.Stand(context.Background(), alice)
	if err != nil {
		t.Fatalf("stand: %v", err)
	}
	if st.Outcome != DealerWin || st.DealerScore != 21 {
		t.Fatalf("expected dealer 21 win, got %s %d", st.Outcome, st.DealerScore)
	}
}

func TestAliceRound(t *testing.T) {
	ctx := context.Background()
	tb, l := newTestTable(t, nil, 1000, scripted(cards.Seven, cards.Nine, cards.Eight, cards.Ten, cards.Five))

	deal, err := tb.Deal(ctx, alice, 50)
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	if deal.PlayerScore != 15 || deal.DealerUpCard.Rank != cards.Nine || deal.State != Playing {
		t.Fatalf("unexpected deal: score %d up %s state %s", deal.PlayerScore, deal.DealerUpCard, deal.State)
	}
	if got := balance(t, l, alice); got != 950 {
		t.Fatalf("expected balance 950 after deal, got %d", got)
	}

	hit, err := tb.Hit(ctx, alice)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if hit.DrawnCard.Rank != cards.Five || hit.PlayerScore != 20 || hit.State != Playing || hit.Settlement != nil {
		t.Fatalf("unexpected hit: %+v", hit)
	}

	st, err := tb.Stand(ctx, alice)
	if err != nil {
		t.Fatalf("stand: %v", err)
	}
	if st.Outcome != PlayerWin || st.DealerScore != 19 || len(st.DealerFinalHand) != 2 {
		t.Fatalf("unexpected settlement: %+v", st)
	}
	if st.Payout != 100 || st.Balance != 1050 {
		t.Fatalf("expected payout 100 balance 1050, got %d %d", st.Payout, st.Balance)
	}

	if _, err := tb.Hit(ctx, alice); !errs.IsKind(err, errs.NoActiveHand) {
		t.Fatalf("expected NoActiveHand after settlement, got %v", err)
	}
	if _, err := tb.Peek(alice); !errs.IsKind(err, errs.NoActiveHand) {
		t.Fatalf("expected NoActiveHand on peek, got %v", err)
	}
	if tb.Recorder().Hands() != 1 {
		t.Fatalf("expected one recorded hand, got %d", tb.Recorder().Hands())
	}
}

func TestHitBust(t *testing.T) {
	ctx := context.Background()
	tb, l := newTestTable(t, nil, 1000, scripted(cards.Ten, cards.Nine, cards.Six, cards.Seven, cards.King))
	if _, err := tb.Deal(ctx, alice, 10); err != nil {
		t.Fatalf("deal: %v", err)
	}
	res, err := tb.Hit(ctx, alice)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if res.Outcome() != Bust || res.State != GameOver {
		t.Fatalf("expected bust, got %s %s", res.Outcome(), res.State)
	}
	if res.Settlement.Payout != 0 || len(res.Settlement.DealerFinalHand) != 2 {
		t.Fatalf("bust pays 0 and dealer does not draw: %+v", res.Settlement)
	}
	if got := balance(t, l, alice); got != 990 {
		t.Fatalf("expected 990, got %d", got)
	}
	if tb.ActiveHands() != 0 {
		t.Fatalf("session should be deleted after bust")
	}
}

func TestStandDealerPlay(t *testing.T) {
	cases := []struct {
		name    string
		deck    []cards.Rank
		outcome Outcome
		payout  int
	}{
		{"dealer 16 draws 5", []cards.Rank{cards.Ten, cards.Ten, cards.Eight, cards.Six, cards.Five}, DealerWin, 0},
		{"dealer busts", []cards.Rank{cards.Ten, cards.Ten, cards.Eight, cards.Six, cards.King}, DealerBust, 20},
		{"push", []cards.Rank{cards.Ten, cards.Ten, cards.Eight, cards.Eight}, Push, 10},
	}
	for _, c := range cases {
		tb, _ := newTestTable(t, nil, 1000, scripted(c.deck...))
		if _, err := tb.Deal(context.Background(), alice, 10); err != nil {
			t.Fatalf("%s: deal: %v", c.name, err)
		}
		st, err := tb.Stand(context.Background(), alice)
		if err != nil {
			t.Fatalf("%s: stand: %v", c.name, err)
		}
		if st.Outcome != c.outcome || st.Payout != c.payout {
			t.Fatalf("%s: expected %s/%d, got %s/%d", c.name, c.outcome, c.payout, st.Outcome, st.Payout)
		}
		if st.DealerScore < spec.DealerStandsOn {
			t.Fatalf("%s: dealer stopped below 17: %d", c.name, st.DealerScore)
		}
	}
}

func TestDealerSoft17Variant(t *testing.T) {
	deck := []cards.Rank{cards.Ten, cards.Ace, cards.Eight, cards.Six, cards.Two}

	tb, _ := newTestTable(t, nil, 1000, scripted(deck...))
	tb.Deal(context.Background(), alice, 10)
	st, err := tb.Stand(context.Background(), alice)
	if err != nil {
		t.Fatalf("stand: %v", err)
	}
	if st.Outcome != PlayerWin || st.DealerScore != 17 {
		t.Fatalf("S17: expected dealer to stand on soft 17, got %s %d", st.Outcome, st.DealerScore)
	}

	h17 := spec.Default()
	h17.DealerHitsSoft17 = true
	tb, _ = newTestTable(t, h17, 1000, scripted(deck...))
	tb.Deal(context.Background(), alice, 10)
	st, err = tb.Stand(context.Background(), alice)
	if err != nil {
		t.Fatalf("stand: %v", err)
	}
	if st.Outcome != DealerWin || st.DealerScore != 19 {
		t.Fatalf("H17: expected dealer to draw to 19, got %s %d", st.Outcome, st.DealerScore)
	}
}

func TestAutoStandOn21(t *testing.T) {
	deck := []cards.Rank{cards.Ten, cards.Ten, cards.Five, cards.Seven, cards.Six}

	tb, _ := newTestTable(t, nil, 1000, scripted(deck...))
	tb.Deal(context.Background(), alice, 10)
	res, err := tb.Hit(context.Background(), alice)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if res.State != GameOver || res.Outcome() != PlayerWin {
		t.Fatalf("expected auto stand and win, got %s %s", res.State, res.Outcome())
	}

	rules := spec.Default()
	rules.AutoStandOn21 = false
	tb, _ = newTestTable(t, rules, 1000, scripted(deck...))
	tb.Deal(context.Background(), alice, 10)
	res, err = tb.Hit(context.Background(), alice)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if res.State != Playing || res.PlayerScore != 21 {
		t.Fatalf("expected to keep playing on 21, got %s %d", res.State, res.PlayerScore)
	}
}

func TestDouble(t *testing.T) {
	ctx := context.Background()
	tb, l := newTestTable(t, nil, 1000, scripted(cards.Five, cards.Ten, cards.Six, cards.Seven, cards.Ten, cards.Two))
	tb.Deal(ctx, alice, 10)

	res, err := tb.Double(ctx, alice)
	if err != nil {
		t.Fatalf("double: %v", err)
	}
	if res.AdditionalBetTaken != 10 || res.PlayerScore != 21 || res.State != GameOver {
		t.Fatalf("unexpected double: %+v", res)
	}
	st := res.Settlement
	if st.Outcome != PlayerWin || st.Bet != 20 || st.Payout != 40 || len(st.DealerFinalHand) != 2 {
		t.Fatalf("unexpected settlement: %+v", st)
	}
	if got := balance(t, l, alice); got != 1020 {
		t.Fatalf("expected 1020, got %d", got)
	}
}

func TestDoubleBustDealerDoesNotDraw(t *testing.T) {
	ctx := context.Background()
	tb, l := newTestTable(t, nil, 1000, scripted(cards.Ten, cards.Ten, cards.Six, cards.Six, cards.King, cards.Five))
	tb.Deal(ctx, alice, 10)

	res, err := tb.Double(ctx, alice)
	if err != nil {
		t.Fatalf("double: %v", err)
	}
	if res.Settlement.Outcome != Bust || len(res.Settlement.DealerFinalHand) != 2 {
		t.Fatalf("expected bust without dealer draw: %+v", res.Settlement)
	}
	if got := balance(t, l, alice); got != 980 {
		t.Fatalf("expected 980, got %d", got)
	}
}

func TestDoubleAfterHitRejected(t *testing.T) {
	ctx := context.Background()
	tb, l := newTestTable(t, nil, 1000, scripted(cards.Five, cards.Ten, cards.Four, cards.Seven, cards.Two, cards.Nine))
	tb.Deal(ctx, alice, 10)
	if _, err := tb.Hit(ctx, alice); err != nil {
		t.Fatalf("hit: %v", err)
	}

	if _, err := tb.Double(ctx, alice); !errs.IsKind(err, errs.InvalidAction) {
		t.Fatalf("expected InvalidAction, got %v", err)
	}
	v, err := tb.Peek(alice)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if len(v.PlayerHand) != 3 || v.Bet != 10 || v.State != Playing || v.CanDouble {
		t.Fatalf("state changed by rejected double: %+v", v)
	}
	if got := balance(t, l, alice); got != 990 {
		t.Fatalf("expected 990, got %d", got)
	}
}

func TestDoubleInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	tb, l := newTestTable(t, nil, 100, scripted(cards.Five, cards.Ten, cards.Six, cards.Seven, cards.Ten))
	tb.Deal(ctx, alice, 60)

	if _, err := tb.Double(ctx, alice); !errs.IsKind(err, errs.InsufficientFunds) {
		t.Fatalf("expected InsufficientFunds, got %v", err)
	}
	v, err := tb.Peek(alice)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if len(v.PlayerHand) != 2 || v.Bet != 60 || !v.CanDouble {
		t.Fatalf("failed double must not mutate: %+v", v)
	}
	if got := balance(t, l, alice); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
	// 失敗後仍可正常停牌
	st, err := tb.Stand(ctx, alice)
	if err != nil {
		t.Fatalf("stand: %v", err)
	}
	if st.Outcome != DealerWin {
		t.Fatalf("11 vs 17 should lose, got %s", st.Outcome)
	}
}

func TestDealRejections(t *testing.T) {
	ctx := context.Background()
	tb, l := newTestTable(t, nil, 1000, scripted(cards.Ten, cards.Ten, cards.Eight, cards.Seven))

	for _, bet := range []int{0, -5, 10001} {
		if _, err := tb.Deal(ctx, alice, bet); !errs.IsKind(err, errs.InvalidBet) {
			t.Fatalf("bet %d: expected InvalidBet, got %v", bet, err)
		}
	}
	if _, err := tb.Deal(ctx, alice, 10); err != nil {
		t.Fatalf("deal: %v", err)
	}
	if _, err := tb.Deal(ctx, alice, 10); !errs.IsKind(err, errs.SessionAlreadyActive) {
		t.Fatalf("expected SessionAlreadyActive, got %v", err)
	}
	if got := balance(t, l, alice); got != 990 {
		t.Fatalf("only one bet should be debited, got %d", got)
	}

	if _, err := tb.Deal(ctx, "bob", 2000); !errs.IsKind(err, errs.InsufficientFunds) {
		t.Fatalf("expected InsufficientFunds, got %v", err)
	}
	if tb.ActiveHands() != 1 {
		t.Fatalf("failed deal must not create a session")
	}
}

func TestActionsWithoutHand(t *testing.T) {
	tb, _ := newTestTable(t, nil, 1000, nil)
	ctx := context.Background()
	if _, err := tb.Hit(ctx, alice); !errs.IsKind(err, errs.NoActiveHand) {
		t.Fatalf("hit: expected NoActiveHand, got %v", err)
	}
	if _, err := tb.Stand(ctx, alice); !errs.IsKind(err, errs.NoActiveHand) {
		t.Fatalf("stand: expected NoActiveHand, got %v", err)
	}
	if _, err := tb.Double(ctx, alice); !errs.IsKind(err, errs.NoActiveHand) {
		t.Fatalf("double: expected NoActiveHand, got %v", err)
	}
}

func TestEmptyDeckSource(t *testing.T) {
	empty := func(*core.Core) *cards.Deck { return cards.NewDeckFrom() }
	tb, l := newTestTable(t, nil, 1000, empty)
	if _, err := tb.Deal(context.Background(), alice, 10); !errs.IsKind(err, errs.EmptyDeck) {
		t.Fatalf("expected EmptyDeck, got %v", err)
	}
	if got := balance(t, l, alice); got != 1000 {
		t.Fatalf("no debit on dealing failure, got %d", got)
	}
}

func TestSettlementIgnoresCancel(t *testing.T) {
	tb, l := newTestTable(t, nil, 1000, scripted(cards.Ten, cards.Ten, cards.Nine, cards.Seven))
	tb.Deal(context.Background(), alice, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st, err := tb.Stand(ctx, alice)
	if err != nil {
		t.Fatalf("stand: %v", err)
	}
	if st.Outcome != PlayerWin || balance(t, l, alice) != 1010 {
		t.Fatalf("settlement must complete: %+v", st)
	}
}

type flakyLedger struct {
	*ledger.MemLedger
	failCredit bool
}

func (f *flakyLedger) Credit(ctx context.Context, id string, amount int) (int, error) {
	if f.failCredit {
		return 0, errors.New("ledger unavailable")
	}
	return f.MemLedger.Credit(ctx, id, amount)
}

func TestSettleFailureKeepsSession(t *testing.T) {
	fl := &flakyLedger{MemLedger: ledger.NewMemLedger(1000)}
	tb, err := NewTable(nil, fl, WithDeckSource(scripted(cards.Ten, cards.Ten, cards.Nine, cards.Seven)))
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	ctx := context.Background()
	tb.Deal(ctx, alice, 10)

	fl.failCredit = true
	_, err = tb.Stand(ctx, alice)
	if err == nil || errs.KindOf(err) != errs.Internal {
		t.Fatalf("expected internal error, got %v", err)
	}
	v, err := tb.Peek(alice)
	if err != nil || v.State != Playing || len(v.PlayerHand) != 2 {
		t.Fatalf("session must survive a failed settlement: %+v %v", v, err)
	}

	fl.failCredit = false
	st, err := tb.Stand(ctx, alice)
	if err != nil || st.Outcome != PlayerWin || st.Balance != 1010 {
		t.Fatalf("retry should settle: %+v %v", st, err)
	}
}

func TestConcurrentStandSameIdentity(t *testing.T) {
	tb, l := newTestTable(t, nil, 1000, scripted(cards.Ten, cards.Ten, cards.Eight, cards.Seven))
	tb.Deal(context.Background(), alice, 10)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		ok     int
		noHand int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tb.Stand(context.Background(), alice)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errs.IsKind(err, errs.NoActiveHand):
				noHand++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if ok != 1 || noHand != 31 {
		t.Fatalf("expected exactly one settlement, got ok=%d noHand=%d", ok, noHand)
	}
	if got := balance(t, l, alice); got != 1010 {
		t.Fatalf("expected single payout, got balance %d", got)
	}
}

func TestConcurrentPlayers(t *testing.T) {
	tb, l := newTestTable(t, nil, 1000, nil)
	players := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}

	var wg sync.WaitGroup
	payouts := make([]int, len(players))
	for i, p := range players {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			res, err := tb.Deal(ctx, p, 10)
			if err != nil {
				t.Errorf("%s deal: %v", p, err)
				return
			}
			if res.Settlement != nil {
				payouts[i] = res.Settlement.Payout
				return
			}
			st, err := tb.Stand(ctx, p)
			if err != nil {
				t.Errorf("%s stand: %v", p, err)
				return
			}
			payouts[i] = st.Payout
		}()
	}
	wg.Wait()

	for i, p := range players {
		if got, want := balance(t, l, p), 1000-10+payouts[i]; got != want {
			t.Fatalf("%s: expected %d, got %d", p, want, got)
		}
	}
	if tb.ActiveHands() != 0 || tb.Recorder().Hands() != len(players) {
		t.Fatalf("expected all hands settled and recorded")
	}
}

func TestSeededTablesDealAlike(t *testing.T) {
	a, _ := newTestTable(t, nil, 1000, nil)
	b, _ := newTestTable(t, nil, 1000, nil)
	for i := 0; i < 5; i++ {
		ra, err := a.Deal(context.Background(), alice, 10)
		if err != nil {
			t.Fatalf("deal a: %v", err)
		}
		rb, err := b.Deal(context.Background(), alice, 10)
		if err != nil {
			t.Fatalf("deal b: %v", err)
		}
		if ra.PlayerHand.String() != rb.PlayerHand.String() || ra.DealerUpCard != rb.DealerUpCard {
			t.Fatalf("round %d: same seed dealt differently: %s vs %s", i, ra.PlayerHand, rb.PlayerHand)
		}
		if ra.RoundID == rb.RoundID {
			t.Fatalf("round ids must be unique")
		}
		if ra.Settlement == nil {
			a.Stand(context.Background(), alice)
		}
		if rb.Settlement == nil {
			b.Stand(context.Background(), alice)
		}
	}
}
