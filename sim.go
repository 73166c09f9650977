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

package vegas21

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/game"
	"github.com/zintix-labs/vegas21/ledger"
	"github.com/zintix-labs/vegas21/sdk/core"
	"github.com/zintix-labs/vegas21/spec"
	"github.com/zintix-labs/vegas21/stats"
	"golang.org/x/sync/errgroup"
)

// SimConfig 模擬參數
type SimConfig struct {
	Hands   int   // 總手數
	Workers int   // 併發牌桌數
	Bet     int   // 每手注額，0 使用房規 DefaultBet
	Seed    int64 // base seed
	ShowPB  bool  // 顯示進度條
}

// Simulator 以指定策略在多張獨立牌桌上大量模擬，合併統計結果。
//
// 每個 worker 擁有自己的牌桌、帳本與紀錄員，worker 的 seed 由 base seed 依序派生，
// 因此相同 seed 與 worker 數的結果可重現。
type Simulator struct {
	rules    *spec.TableSetting
	cf       core.PRNGFactory
	strategy Strategy
}

func NewSimulator(rules *spec.TableSetting, cf core.PRNGFactory, st Strategy) (*Simulator, error) {
	if rules == nil {
		rules = spec.Default()
	}
	if err := rules.Valid(); err != nil {
		return nil, err
	}
	if cf == nil {
		cf = core.Default()
	}
	if st == nil {
		st = BasicStrategy{}
	}
	return &Simulator{rules: rules, cf: cf, strategy: st}, nil
}

// Run 執行模擬並回傳報表與用時
func (s *Simulator) Run(ctx context.Context, cfg SimConfig) (*stats.Report, time.Duration, error) {
	if cfg.Hands < 1 {
		return nil, 0, errs.NewWarn("hands must > 0")
	}
	if cfg.Workers < 1 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if cfg.Workers > cfg.Hands {
		cfg.Workers = cfg.Hands
	}
	if cfg.Bet == 0 {
		cfg.Bet = s.rules.DefaultBet
	}
	if cfg.Bet < s.rules.MinBet || cfg.Bet > s.rules.MaxBet {
		return nil, 0, errs.Newf(errs.InvalidBet, "bet %d out of [%d, %d]", cfg.Bet, s.rules.MinBet, s.rules.MaxBet)
	}

	seeds := core.NewSeedMaker(cfg.Seed)
	recs := make([]*stats.Recorder, cfg.Workers)
	tables := make([]*game.Table, cfg.Workers)
	quota := make([]int, cfg.Workers)
	for w := range cfg.Workers {
		quota[w] = cfg.Hands / cfg.Workers
		if w < cfg.Hands%cfg.Workers {
			quota[w]++
		}
		recs[w] = stats.NewRecorder(s.rules.TableName)
		// 加倍最多押兩份，預留足夠餘額讓模擬不因破產中斷
		bank := ledger.NewMemLedger(quota[w]*cfg.Bet*2 + cfg.Bet)
		tb, err := game.NewTable(s.rules, bank,
			game.WithPRNG(s.cf, seeds.Next()),
			game.WithRecorder(recs[w]),
		)
		if err != nil {
			return nil, 0, err
		}
		tables[w] = tb
	}

	bar := pb.StartNew(cfg.Hands)
	if !cfg.ShowPB {
		bar.SetWriter(io.Discard)
	}
	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			id := fmt.Sprintf("sim-%d", w)
			for i := 0; i < quota[w]; i++ {
				if i&1023 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if err := s.play(gctx, tables[w], id, cfg.Bet); err != nil {
					return err
				}
				bar.Increment()
			}
			return nil
		})
	}
	err := g.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	if err != nil {
		return nil, used, err
	}

	total := stats.NewRecorder(s.rules.TableName)
	rtps := make([]float64, cfg.Workers)
	for w, r := range recs {
		rtps[w] = r.Report().Rtp()
		total.Merge(r)
	}
	rep := total.Report()
	if cfg.Workers > 1 {
		rep.AttachWorkers(rtps)
	}
	return rep, used, nil
}

// play 以策略打完一手牌
func (s *Simulator) play(ctx context.Context, tb *game.Table, id string, bet int) error {
	res, err := tb.Deal(ctx, id, bet)
	if err != nil {
		return err
	}
	if res.Settlement != nil {
		return nil
	}
	for {
		v, err := tb.Peek(id)
		if err != nil {
			return err
		}
		switch s.strategy.Decide(v) {
		case ActHit:
			hr, err := tb.Hit(ctx, id)
			if err != nil {
				return err
			}
			if hr.Settlement != nil {
				return nil
			}
		case ActDouble:
			_, err := tb.Double(ctx, id)
			return err
		default:
			_, err := tb.Stand(ctx, id)
			return err
		}
	}
}
