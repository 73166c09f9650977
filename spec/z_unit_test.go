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

package spec

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Valid(); err != nil {
		t.Fatalf("default setting invalid: %v", err)
	}
}

func TestYAMLOverlaysDefault(t *testing.T) {
	data := []byte(`
table_name: high-roller
min_bet: 100
max_bet: 5000
default_bet: 100
dealer_hits_soft_17: true
payouts:
  blackjack: 2.2
`)
	ts, err := GetTableSettingByYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.TableName != "high-roller" || ts.MinBet != 100 || !ts.DealerHitsSoft17 {
		t.Fatalf("yaml not applied: %+v", ts)
	}
	if !ts.DealerPeek || !ts.AutoStandOn21 || ts.ReshuffleBelow != 10 {
		t.Fatalf("defaults lost: %+v", ts)
	}
	if ts.Payouts.Blackjack != 2.2 || ts.Payouts.Win != 2 {
		t.Fatalf("payout overlay wrong: %+v", ts.Payouts)
	}
}

func TestJSONAndValidation(t *testing.T) {
	if _, err := GetTableSettingByJSON([]byte(`{"min_bet":0}`)); err == nil {
		t.Fatalf("expected error for min_bet 0")
	}
	if _, err := GetTableSettingByJSON([]byte(`{"reshuffle_below":52}`)); err == nil {
		t.Fatalf("expected error for reshuffle_below 52")
	}
	if _, err := GetTableSettingByYAML([]byte("payouts:\n  win: -1\n")); err == nil {
		t.Fatalf("expected error for negative payout")
	}
	ts, err := GetTableSettingByJSON([]byte(`{"auto_stand_on_21":false}`))
	if err != nil || ts.AutoStandOn21 {
		t.Fatalf("json overlay failed: %v %+v", err, ts)
	}
}

func TestPayoutCredit(t *testing.T) {
	p := Default().Payouts
	cases := []struct {
		bet  int
		mult float64
		want int
	}{
		{50, p.Blackjack, 125},
		{15, p.Blackjack, 37},
		{50, p.Win, 100},
		{50, p.Push, 50},
		{50, p.Lose, 0},
		{0, p.Win, 0},
	}
	for _, c := range cases {
		if got := p.Credit(c.bet, c.mult); got != c.want {
			t.Fatalf("credit(%d, %v): expected %d, got %d", c.bet, c.mult, c.want, got)
		}
	}
}
