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

// Package vegas21 提供 21 點牌桌的「組裝入口（assembler）」與「運行入口（runtime entry）」。
//
// Casino 把下列地基組裝在一起，對外提供玩家動作與帳戶操作：
//  1. TableSetting：房規（注額範圍、莊家軟 17、賠率）。
//  2. Ledger：帳本，牌桌只透過 Debit / Credit / Balance 與它互動。
//  3. PRNGFactory：亂數核心工廠，給定 seed 時整個牌桌的發牌可重現。
//
// 典型使用情境：
//   - 後端服務（HTTP）：server 持有一個 Casino，handler 呼叫 Deal/Hit/Stand/Double。
//   - 模擬器（sim）：Simulator 以相同房規建立多張牌桌，用基本策略大量模擬。
package vegas21

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/vegas21/configs"
	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/game"
	"github.com/zintix-labs/vegas21/ledger"
	"github.com/zintix-labs/vegas21/sdk/core"
	"github.com/zintix-labs/vegas21/spec"
	"github.com/zintix-labs/vegas21/stats"
)

// Casino 單一牌桌加上記憶體帳本的執行期。
type Casino struct {
	rules *spec.TableSetting
	bank  *ledger.MemLedger
	table *game.Table
	log   *slog.Logger
	seed  int64

	// lifecycle
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string
}

type config struct {
	rules  *spec.TableSetting
	cf     core.PRNGFactory
	seed   int64
	seeded bool
	log    *slog.Logger
	extra  []game.Option
}

// Option 設定 Casino 的組裝參數
type Option func(*config)

// WithRules 指定房規；未指定時使用內建 configs/default_table.yaml。
func WithRules(ts *spec.TableSetting) Option {
	return func(c *config) { c.rules = ts }
}

// WithPRNG 指定亂數核心工廠
func WithPRNG(cf core.PRNGFactory) Option {
	return func(c *config) { c.cf = cf }
}

// WithSeed 固定 base seed，讓整個牌桌的發牌序列可重現。
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithTableOptions 直接傳遞牌桌選項（例如重播用的 game.WithDeckSource）。
func WithTableOptions(opts ...game.Option) Option {
	return func(c *config) { c.extra = append(c.extra, opts...) }
}

// New 組裝 Casino。
func New(opts ...Option) (*Casino, error) {
	c := &config{cf: core.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.rules == nil {
		ts, err := spec.GetTableSettingByYAML(configs.DefaultTable)
		if err != nil {
			return nil, err
		}
		c.rules = ts
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	if !c.seeded {
		c.seed = core.RandomSeed()
	}

	bank := ledger.NewMemLedger(c.rules.StartBalance)
	topts := append([]game.Option{
		game.WithPRNG(c.cf, c.seed),
		game.WithLogger(c.log),
	}, c.extra...)
	tb, err := game.NewTable(c.rules, bank, topts...)
	if err != nil {
		return nil, err
	}
	return &Casino{
		rules: c.rules,
		bank:  bank,
		table: tb,
		log:   c.log,
		seed:  c.seed,
		done:  make(chan struct{}),
	}, nil
}

// LoadRules 從 fs.FS 讀取房規設定檔，依副檔名決定 YAML 或 JSON。
func LoadRules(fsys fs.FS, name string) (*spec.TableSetting, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.Wrap(err, "read rules: "+name)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return spec.GetTableSettingByYAML(b)
	case ".json":
		return spec.GetTableSettingByJSON(b)
	default:
		return nil, errs.NewFatal("unsupported rules file: " + name)
	}
}

func (c *Casino) Rules() *spec.TableSetting { return c.rules }

// Seed 回傳 base seed（未固定時為隨機產生的值，可用來重現）。
func (c *Casino) Seed() int64 { return c.seed }

// Table 底層牌桌
func (c *Casino) Table() *game.Table { return c.table }

// Stats 牌桌即時統計快照
func (c *Casino) Stats() *stats.Report { return c.table.Recorder().Report() }

// ============================================================
// ** 玩家動作 **
// ============================================================

func (c *Casino) Deal(ctx context.Context, username string, bet int) (game.DealResult, error) {
	if err := c.enter(ctx); err != nil {
		return game.DealResult{}, err
	}
	return c.table.Deal(ctx, username, bet)
}

func (c *Casino) Hit(ctx context.Context, username string) (game.HitResult, error) {
	if err := c.enter(ctx); err != nil {
		return game.HitResult{}, err
	}
	return c.table.Hit(ctx, username)
}

func (c *Casino) Stand(ctx context.Context, username string) (game.Settlement, error) {
	if err := c.enter(ctx); err != nil {
		return game.Settlement{}, err
	}
	return c.table.Stand(ctx, username)
}

func (c *Casino) Double(ctx context.Context, username string) (game.DoubleResult, error) {
	if err := c.enter(ctx); err != nil {
		return game.DoubleResult{}, err
	}
	return c.table.Double(ctx, username)
}

// State 目前牌局的可見狀態（莊家暗牌不揭露）
func (c *Casino) State(ctx context.Context, username string) (game.TableView, error) {
	if err := c.enter(ctx); err != nil {
		return game.TableView{}, err
	}
	return c.table.Peek(username)
}

// ============================================================
// ** 帳戶 **
// ============================================================

// InitUser 開戶；已存在則回傳現有帳戶。
func (c *Casino) InitUser(username string) ledger.Account {
	return c.bank.Init(username)
}

func (c *Casino) Balance(ctx context.Context, username string) (int, error) {
	return c.bank.Balance(ctx, username)
}

// TopUp 儲值；amount <= 0 時使用房規的 DefaultTopUp。
func (c *Casino) TopUp(username string, amount int) (ledger.Account, error) {
	if amount <= 0 {
		amount = c.rules.DefaultTopUp
	}
	return c.bank.TopUp(username, amount)
}

// Leaderboard 依淨輸贏排序的前 n 名
func (c *Casino) Leaderboard(n int) []ledger.Account {
	return c.bank.Leaderboard(n)
}

// ============================================================
// ** lifecycle **
// ============================================================

// enter 動作前的閘門：呼叫端已取消或 Casino 已關閉時直接拒絕。
func (c *Casino) enter(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		c.closed.Store(true)
		return errs.NewFatal("casino closed: " + c.ClosedReason())
	default:
		return nil
	}
}

// Close 關閉 Casino，之後所有玩家動作都會失敗。可重複呼叫。
func (c *Casino) Close() {
	c.CloseWithReason("closed")
}

// CloseWithReason 關閉並記錄原因（只寫入一次）。
func (c *Casino) CloseWithReason(reason string) {
	c.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		c.reason.Store(reason)
		c.closed.Store(true)
		close(c.done)
		c.log.Info("casino.close", slog.String("reason", reason), slog.Int("active_hands", c.table.ActiveHands()))
	})
}

func (c *Casino) Closed() bool {
	return c.closed.Load()
}

func (c *Casino) ClosedReason() string {
	if v := c.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
