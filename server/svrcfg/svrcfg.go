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

package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/vegas21"
	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/server/logger"
)

const (
	DefaultRequestTimeout = 5 * time.Second
	DefaultMaxSimHands    = 1_000_000
	DefaultMaxSimWorkers  = 8
)

// SvrCfg server 組裝所需的全部依賴，由外層明確注入。
type SvrCfg struct {
	Log            *slog.Logger
	Casino         *vegas21.Casino
	Addr           string        // 空字串使用 netsvr.DefaultAddr
	RequestTimeout time.Duration // 每個玩家動作的逾時
	MaxSimHands    int           // /v1/sim 單次請求的手數上限
	MaxSimWorkers  int
}

// Valid 檢查必要依賴並補上預設值。
func (sc *SvrCfg) Valid() error {
	if sc == nil {
		return errs.NewFatal("nil server config")
	}
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("async log handler is not ready")
		}
	} else {
		sc.Log = logger.NewDefaultLogger(logger.ModeSilence)
	}
	if sc.Casino == nil {
		return errs.NewFatal("casino is required")
	}
	if sc.Casino.Closed() {
		return errs.NewFatal("casino already closed: " + sc.Casino.ClosedReason())
	}
	if sc.RequestTimeout <= 0 {
		sc.RequestTimeout = DefaultRequestTimeout
	}
	if sc.MaxSimHands <= 0 {
		sc.MaxSimHands = DefaultMaxSimHands
	}
	if sc.MaxSimWorkers <= 0 {
		sc.MaxSimWorkers = DefaultMaxSimWorkers
	}
	sc.MaxSimWorkers = min(sc.MaxSimWorkers, 64)
	return nil
}
