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

package stats

import (
	"math"
	"sync"
)

// Outcome labels，與 game.Outcome.String() 對齊。
var OutcomeLabels = []string{"blackjack", "player_win", "dealer_bust", "push", "dealer_win", "bust"}

// HandRecord 一手牌的結算紀錄
type HandRecord struct {
	Outcome string
	Bet     int // 結算時的總注額（加倍後為兩倍）
	Payout  int
	Doubled bool
}

// Recorder 累計結算紀錄，可在多個 goroutine 間共用。
//
// 紀錄時只做整數累加，Report() 時才一次性轉換成統計結果。
type Recorder struct {
	mu        sync.Mutex
	tableName string
	hands     int
	totalBet  int
	payout    int
	doubles   int
	outcomes  map[string]int
	retSum    float64 // Σ payout/bet
	retSqSum  float64 // Σ (payout/bet)^2
}

func NewRecorder(tableName string) *Recorder {
	return &Recorder{
		tableName: tableName,
		outcomes:  make(map[string]int, len(OutcomeLabels)),
	}
}

// Record 紀錄一手牌；nil Recorder 直接忽略。
func (r *Recorder) Record(h HandRecord) {
	if r == nil || h.Bet <= 0 {
		return
	}
	ret := float64(h.Payout) / float64(h.Bet)
	r.mu.Lock()
	r.hands++
	r.totalBet += h.Bet
	r.payout += h.Payout
	if h.Doubled {
		r.doubles++
	}
	r.outcomes[h.Outcome]++
	r.retSum += ret
	r.retSqSum += ret * ret
	r.mu.Unlock()
}

// Merge 把 o 的累計併入 r。
func (r *Recorder) Merge(o *Recorder) {
	if r == nil || o == nil || r == o {
		return
	}
	o.mu.Lock()
	hands, bet, pay, dbl := o.hands, o.totalBet, o.payout, o.doubles
	rs, rsq := o.retSum, o.retSqSum
	outs := make(map[string]int, len(o.outcomes))
	for k, v := range o.outcomes {
		outs[k] = v
	}
	o.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.hands += hands
	r.totalBet += bet
	r.payout += pay
	r.doubles += dbl
	r.retSum += rs
	r.retSqSum += rsq
	for k, v := range outs {
		r.outcomes[k] += v
	}
}

func (r *Recorder) Hands() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hands
}

// Report 產生目前累計的統計報表（快照，不影響後續紀錄）。
func (r *Recorder) Report() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := &Report{
		Summary: &SummaryReport{
			TableName:   r.tableName,
			Hands:       r.hands,
			TotalBet:    r.totalBet,
			TotalPayout: r.payout,
			HouseNet:    r.totalBet - r.payout,
			Doubles:     r.doubles,
		},
		Outcome: &OutcomeReport{
			Labels: append([]string(nil), OutcomeLabels...),
			Counts: make([]int, len(OutcomeLabels)),
			Rates:  make([]float64, len(OutcomeLabels)),
		},
		retSum:   r.retSum,
		retSqSum: r.retSqSum,
	}
	for i, label := range OutcomeLabels {
		rep.Outcome.Counts[i] = r.outcomes[label]
	}
	rep.Done()
	return rep
}

// returnStd 單手回報倍數（payout/bet）的樣本標準差
func returnStd(n int, sum, sqSum float64) float64 {
	if n < 2 {
		return 0
	}
	fn := float64(n)
	variance := (sqSum - sum*sum/fn) / (fn - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
