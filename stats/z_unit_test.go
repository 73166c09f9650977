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

package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/zintix-labs/vegas21/stats"
)

// record builds a Recorder from (outcome, bet, payout) triples.
func record(hands ...stats.HandRecord) *stats.Recorder {
	r := stats.NewRecorder("TestTable")
	for _, h := range hands {
		r.Record(h)
	}
	return r
}

func TestReportTotals(t *testing.T) {
	r := record(
		stats.HandRecord{Outcome: "blackjack", Bet: 10, Payout: 25},
		stats.HandRecord{Outcome: "player_win", Bet: 20, Payout: 40, Doubled: true},
		stats.HandRecord{Outcome: "push", Bet: 10, Payout: 10},
		stats.HandRecord{Outcome: "bust", Bet: 10, Payout: 0},
	)
	rep := r.Report()
	s := rep.Summary
	if s.Hands != 4 || s.TotalBet != 50 || s.TotalPayout != 75 || s.HouseNet != -25 || s.Doubles != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if math.Abs(s.RTP-1.5) > 1e-12 {
		t.Fatalf("expected RTP 1.5, got %v", s.RTP)
	}
	if rep.Count("blackjack") != 1 || rep.Count("dealer_win") != 0 {
		t.Fatalf("unexpected outcome counts: %+v", rep.Outcome)
	}
	if math.Abs(s.WinRate-0.5) > 1e-12 {
		t.Fatalf("expected win rate 0.5, got %v", s.WinRate)
	}
	if s.WinRateCI.Lo > s.WinRate || s.WinRateCI.Hi < s.WinRate {
		t.Fatalf("win rate outside its CI: %+v", s)
	}
	if s.RtpCI.Lo > s.RTP || s.RtpCI.Hi < s.RTP {
		t.Fatalf("rtp outside its CI: %+v", s)
	}
}

func TestEmptyReport(t *testing.T) {
	rep := stats.NewRecorder("empty").Report()
	if rep.Summary.RTP != 0 || rep.Summary.Std != 0 || rep.Summary.WinRateCI.Hi != 1 {
		t.Fatalf("unexpected empty report: %+v", rep.Summary)
	}
}

func TestMergeAndConcurrentRecord(t *testing.T) {
	a := stats.NewRecorder("t")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.Record(stats.HandRecord{Outcome: "dealer_win", Bet: 1})
			}
		}()
	}
	wg.Wait()
	b := record(stats.HandRecord{Outcome: "push", Bet: 1, Payout: 1})
	a.Merge(b)
	rep := a.Report()
	if rep.Summary.Hands != 801 || rep.Count("dealer_win") != 800 || rep.Count("push") != 1 {
		t.Fatalf("unexpected merge result: %+v %+v", rep.Summary, rep.Outcome)
	}
}

func TestWorkersAndRender(t *testing.T) {
	rep := record(stats.HandRecord{Outcome: "player_win", Bet: 10, Payout: 20}).Report()
	rep.AttachWorkers([]float64{0.9, 1.1})
	if math.Abs(rep.Workers.Mean-1.0) > 1e-12 || rep.Workers.Std <= 0 {
		t.Fatalf("unexpected worker stats: %+v", rep.Workers)
	}

	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, stats.RenderByName("json")); err != nil {
		t.Fatalf("json render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if _, ok := decoded["Summary"]; !ok {
		t.Fatalf("json output missing Summary")
	}

	buf.Reset()
	if err := rep.WriteWith(&buf, stats.RenderByName("yaml")); err != nil {
		t.Fatalf("yaml render: %v", err)
	}
	if !strings.Contains(buf.String(), "Labels: [") {
		t.Fatalf("expected flow style labels, got:\n%s", buf.String())
	}

	buf.Reset()
	if err := rep.WriteWith(&buf, stats.RenderByName("text")); err != nil {
		t.Fatalf("text render: %v", err)
	}
	if !strings.Contains(buf.String(), "TestTable") || !strings.Contains(buf.String(), "player_win") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
}
