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

// Package spec 定義牌桌的房規設定（TableSetting）與其載入、驗證。
package spec

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/zintix-labs/vegas21/errs"
	"gopkg.in/yaml.v3"
)

// DealerStandsOn 莊家點數到達此值即停牌（軟 17 是否補牌另由 DealerHitsSoft17 決定）。
const DealerStandsOn = 17

// TableSetting 牌桌房規。未在設定檔出現的欄位沿用 Default()。
type TableSetting struct {
	TableName        string      `yaml:"table_name"          json:"table_name"`
	MinBet           int         `yaml:"min_bet"             json:"min_bet"`
	MaxBet           int         `yaml:"max_bet"             json:"max_bet"`
	DefaultBet       int         `yaml:"default_bet"         json:"default_bet"`
	StartBalance     int         `yaml:"start_balance"       json:"start_balance"`
	DefaultTopUp     int         `yaml:"default_topup"       json:"default_topup"`
	ReshuffleBelow   int         `yaml:"reshuffle_below"     json:"reshuffle_below"`
	DealerHitsSoft17 bool        `yaml:"dealer_hits_soft_17" json:"dealer_hits_soft_17"`
	DealerPeek       bool        `yaml:"dealer_peek"         json:"dealer_peek"`
	AutoStandOn21    bool        `yaml:"auto_stand_on_21"    json:"auto_stand_on_21"`
	Payouts          PayoutTable `yaml:"payouts"             json:"payouts"`
}

// PayoutTable 結算倍數：回補金額 = 注額 × 倍數（含本金）。
type PayoutTable struct {
	Blackjack float64 `yaml:"blackjack" json:"blackjack"`
	Win       float64 `yaml:"win"       json:"win"`
	Push      float64 `yaml:"push"      json:"push"`
	Lose      float64 `yaml:"lose"      json:"lose"`
}

// Default 標準房規：莊家軟 17 停牌、會偷看暗牌、21 點自動停牌、天生 21 點賠 3:2。
func Default() *TableSetting {
	return &TableSetting{
		TableName:        "vegas-blackjack",
		MinBet:           1,
		MaxBet:           10000,
		DefaultBet:       10,
		StartBalance:     1000,
		DefaultTopUp:     500,
		ReshuffleBelow:   10,
		DealerHitsSoft17: false,
		DealerPeek:       true,
		AutoStandOn21:    true,
		Payouts: PayoutTable{
			Blackjack: 2.5,
			Win:       2,
			Push:      1,
			Lose:      0,
		},
	}
}

// GetTableSettingByYAML 以 Default() 為底讀取 YAML 設定並檢查後回傳。
func GetTableSettingByYAML(data []byte) (*TableSetting, error) {
	ts := Default()
	if err := yaml.Unmarshal(data, ts); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshall yaml")
	}
	if err := ts.Valid(); err != nil {
		return nil, errs.Wrap(err, "table setting initialized err")
	}
	return ts, nil
}

// GetTableSettingByJSON 以 Default() 為底讀取 Json 設定並檢查後回傳
func GetTableSettingByJSON(data []byte) (*TableSetting, error) {
	ts := Default()
	if err := json.Unmarshal(data, ts); err != nil {
		return nil, errs.Wrap(err, "can not unmarshall json byte")
	}
	if err := ts.Valid(); err != nil {
		return nil, errs.Wrap(err, "table setting initialized err")
	}
	return ts, nil
}

// Valid 房規基本檢查
func (ts *TableSetting) Valid() error {
	if ts == nil {
		return errs.NewFatal("nil table setting")
	}
	if ts.MinBet < 1 {
		return errs.NewFatal(fmt.Sprintf("table: %s err: min_bet must >= 1", ts.TableName))
	}
	if ts.MaxBet < ts.MinBet {
		return errs.NewFatal(fmt.Sprintf("table: %s err: max_bet %d < min_bet %d", ts.TableName, ts.MaxBet, ts.MinBet))
	}
	if ts.DefaultBet < ts.MinBet || ts.DefaultBet > ts.MaxBet {
		return errs.NewFatal(fmt.Sprintf("table: %s err: default_bet %d out of [%d, %d]", ts.TableName, ts.DefaultBet, ts.MinBet, ts.MaxBet))
	}
	if ts.StartBalance < 0 || ts.DefaultTopUp < 0 {
		return errs.NewFatal(fmt.Sprintf("table: %s err: negative balance setting", ts.TableName))
	}
	// 一手牌最多 11 張（4A + 4×2 + 3×3），水位要留給發牌與莊家補牌；52 以上會每抽必換。
	if ts.ReshuffleBelow < 0 || ts.ReshuffleBelow >= 52 {
		return errs.NewFatal(fmt.Sprintf("table: %s err: reshuffle_below must be in [0, 52)", ts.TableName))
	}
	p := ts.Payouts
	for name, m := range map[string]float64{"blackjack": p.Blackjack, "win": p.Win, "push": p.Push, "lose": p.Lose} {
		if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return errs.NewFatal(fmt.Sprintf("table: %s err: invalid payout %s=%v", ts.TableName, name, m))
		}
	}
	return nil
}

// Credit 依倍數計算回補金額，小數部分無條件捨去。
func (p PayoutTable) Credit(bet int, mult float64) int {
	if bet <= 0 || mult <= 0 {
		return 0
	}
	return int(math.Floor(float64(bet) * mult))
}
