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
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang language.Tag = language.English

// Confidence 報表使用的信賴水準
const Confidence = 0.95

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo" yaml:"Lo"`
	Hi float64 `json:"Hi" yaml:"Hi"`
}

// Report 牌桌統計報告
type Report struct {
	Summary  *SummaryReport `json:"Summary"           yaml:"Summary"`
	Outcome  *OutcomeReport `json:"Outcome"           yaml:"Outcome"`
	Workers  *WorkerReport  `json:"Workers,omitempty" yaml:"Workers,omitempty"`
	retSum   float64
	retSqSum float64
	isDone   bool
}

type SummaryReport struct {
	TableName   string  `json:"TableName"   yaml:"TableName"`
	Hands       int     `json:"Hands"       yaml:"Hands"`
	TotalBet    int     `json:"TotalBet"    yaml:"TotalBet"`
	TotalPayout int     `json:"TotalPayout" yaml:"TotalPayout"`
	HouseNet    int     `json:"HouseNet"    yaml:"HouseNet"`
	RTP         float64 `json:"RTP"         yaml:"RTP"`
	RtpCI       CI      `json:"RtpCI"       yaml:"RtpCI"`
	Std         float64 `json:"Std"         yaml:"Std"`
	Doubles     int     `json:"Doubles"     yaml:"Doubles"`
	WinRate     float64 `json:"WinRate"     yaml:"WinRate"`
	WinRateCI   CI      `json:"WinRateCI"   yaml:"WinRateCI"`
}

// OutcomeReport 各結果的次數與比例，Labels 與 Counts/Rates 一一對應。
type OutcomeReport struct {
	Labels []string  `json:"Labels" yaml:"Labels"`
	Counts []int     `json:"Counts" yaml:"Counts"`
	Rates  []float64 `json:"Rates"  yaml:"Rates"`
}

// WorkerReport 多 worker 模擬時，各 worker RTP 的離散程度
type WorkerReport struct {
	Workers int       `json:"Workers" yaml:"Workers"`
	RTPs    []float64 `json:"RTPs"    yaml:"RTPs"`
	Mean    float64   `json:"Mean"    yaml:"Mean"`
	Std     float64   `json:"Std"     yaml:"Std"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積計數轉換為最終統計結果並鎖定 isDone 標記。
func (s *Report) Done() {
	if s.isDone {
		return
	}
	n := s.Summary.Hands
	s.Summary.RTP = s.Rtp()
	s.Summary.Std = returnStd(n, s.retSum, s.retSqSum)
	s.Summary.RtpCI = s.rtpCI()

	wins := 0
	for i, label := range s.Outcome.Labels {
		if n > 0 {
			s.Outcome.Rates[i] = float64(s.Outcome.Counts[i]) / float64(n)
		}
		switch label {
		case "blackjack", "player_win", "dealer_bust":
			wins += s.Outcome.Counts[i]
		}
	}
	s.Summary.WinRate, s.Summary.WinRateCI = proportionCICP(wins, n, Confidence)
	s.isDone = true
}

// Rtp 回傳整體 RTP（總派彩 / 總注額）
func (s *Report) Rtp() float64 {
	if s.Summary.TotalBet == 0 {
		return 0
	}
	return float64(s.Summary.TotalPayout) / float64(s.Summary.TotalBet)
}

// Count 回傳指定結果的次數
func (s *Report) Count(label string) int {
	for i, l := range s.Outcome.Labels {
		if l == label {
			return s.Outcome.Counts[i]
		}
	}
	return 0
}

// AttachWorkers 紀錄各 worker 的 RTP 並計算平均與標準差。
func (s *Report) AttachWorkers(rtps []float64) {
	if len(rtps) == 0 {
		return
	}
	w := &WorkerReport{Workers: len(rtps), RTPs: append([]float64(nil), rtps...)}
	if len(rtps) > 1 {
		w.Mean, w.Std = stat.MeanStdDev(rtps, nil)
	} else {
		w.Mean = rtps[0]
	}
	s.Workers = w
}

func (s *Report) WriteWith(w io.Writer, rep ReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 以表格輸出報表與用時
func (s *Report) StdOut(ut time.Duration) {
	formatDuration(ut, s.Summary.Hands)
	fmt.Println(s.Table())
}

// Table 回傳文字表格
func (s *Report) Table() string {
	s.Done()
	sk, sm := s.fmtBasic()
	return fmtTable(s.Summary.TableName, sk, sm)
}

// ============================================================
// ** 內部方法 **
// ============================================================

// rtpCI 以常態近似求 RTP 信賴區間（每手視為等權重）
func (s *Report) rtpCI() CI {
	rtp := s.Summary.RTP
	n := s.Summary.Hands
	if n < 2 {
		return CI{Lo: rtp, Hi: rtp}
	}
	z := distuv.UnitNormal.Quantile(1 - (1-Confidence)/2)
	se := s.Summary.Std / math.Sqrt(float64(n))
	return CI{
		Lo: max(rtp-z*se, 0.0),
		Hi: rtp + z*se,
	}
}

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

func formatDuration(d time.Duration, hands int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	hps := int(float64(hands) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\nhps : %d hands/sec\n", sec, hps)
		return
	}
	sc := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		p.Printf("used: %dm %ds\nhps : %d hands/sec\n", m, sc, hps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\nhps : %d hands/sec\n", h, m, sc, hps)
}

func (s *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Table":        p.Sprintf("%s", s.Summary.TableName),
		"Hands":        p.Sprintf("%d", s.Summary.Hands),
		"Total Bet":    p.Sprintf("%d", s.Summary.TotalBet),
		"Total Payout": p.Sprintf("%d", s.Summary.TotalPayout),
		"House Net":    p.Sprintf("%d", s.Summary.HouseNet),
		"RTP":          p.Sprintf("%.2f %%", 100.0*s.Summary.RTP),
		"RTP 95% CI":   p.Sprintf("[%.2f%%,%.2f%%]", 100.0*s.Summary.RtpCI.Lo, 100.0*s.Summary.RtpCI.Hi),
		"STD":          p.Sprintf("%.3f", s.Summary.Std),
		"Win Rate":     p.Sprintf("%.2f %%", 100.0*s.Summary.WinRate),
		"Doubles":      p.Sprintf("%d", s.Summary.Doubles),
	}
	keys := []string{"Table", "Hands", "Total Bet", "Total Payout", "House Net", "RTP", "RTP 95% CI", "STD", "Win Rate", "Doubles"}
	for i, label := range s.Outcome.Labels {
		k := "♠ " + label
		basic[k] = p.Sprintf("%d (%.2f%%)", s.Outcome.Counts[i], 100.0*s.Outcome.Rates[i])
		keys = append(keys, k)
	}
	if s.Workers != nil && s.Workers.Workers > 1 {
		basic["Worker RTP STD"] = p.Sprintf("%.4f", s.Workers.Std)
		keys = append(keys, "Worker RTP STD")
	}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var b strings.Builder
	b.WriteString(top)
	b.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	b.WriteString(divider)
	for _, k := range keys {
		b.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
