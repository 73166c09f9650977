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

// Package ledger 為玩家餘額帳本。牌桌只透過 Ledger 介面扣款、派彩與查詢。
package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/zintix-labs/vegas21/errs"
)

// Ledger 牌桌所需的最小帳本介面。
// 每個呼叫都是獨立的請求/回應；失敗時帳本不得有任何異動。
type Ledger interface {
	// Debit 扣款；餘額不足回傳 InsufficientFunds。
	Debit(ctx context.Context, id string, amount int) error
	// Credit 入帳並回傳新餘額。
	Credit(ctx context.Context, id string, amount int) (int, error)
	// Balance 查詢餘額。
	Balance(ctx context.Context, id string) (int, error)
}

// Account 帳戶快照
type Account struct {
	Username string `json:"username"`
	Balance  int    `json:"balance"`
	Wagered  int    `json:"wagered"`
	Won      int    `json:"won"`
}

// Net 累計淨輸贏
func (a Account) Net() int { return a.Won - a.Wagered }

// MemLedger 記憶體帳本；首次出現的玩家以 startBalance 開戶。
type MemLedger struct {
	mu           sync.Mutex
	accounts     map[string]*Account
	startBalance int
}

var _ Ledger = (*MemLedger)(nil)

func NewMemLedger(startBalance int) *MemLedger {
	return &MemLedger{
		accounts:     make(map[string]*Account, 64),
		startBalance: max(0, startBalance),
	}
}

// account 取得或建立帳戶，呼叫端需持有 mu。
func (l *MemLedger) account(id string) *Account {
	a, ok := l.accounts[id]
	if !ok {
		a = &Account{Username: id, Balance: l.startBalance}
		l.accounts[id] = a
	}
	return a
}

func (l *MemLedger) Debit(ctx context.Context, id string, amount int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.Newf(errs.InvalidBet, "debit amount must > 0, got %d", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.account(id)
	if a.Balance < amount {
		return errs.NewWithExtra(errs.InsufficientFunds, "insufficient balance", id)
	}
	a.Balance -= amount
	a.Wagered += amount
	return nil
}

func (l *MemLedger) Credit(ctx context.Context, id string, amount int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, errs.Newf(errs.InvalidBet, "credit amount must >= 0, got %d", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.account(id)
	a.Balance += amount
	a.Won += amount
	return a.Balance, nil
}

func (l *MemLedger) Balance(ctx context.Context, id string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.account(id).Balance, nil
}

// Init 開戶（已存在則不變）並回傳帳戶快照。
func (l *MemLedger) Init(id string) Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.account(id)
}

// TopUp 儲值，不計入輸贏統計。
func (l *MemLedger) TopUp(id string, amount int) (Account, error) {
	if amount <= 0 {
		return Account{}, errs.Warnf("top-up amount must > 0, got %d", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.account(id)
	a.Balance += amount
	return *a, nil
}

// Leaderboard 依淨輸贏排序回傳前 n 名；同分依名稱排序。
func (l *MemLedger) Leaderboard(n int) []Account {
	l.mu.Lock()
	out := make([]Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, *a)
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Net() != out[j].Net() {
			return out[i].Net() > out[j].Net()
		}
		return out[i].Username < out[j].Username
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
