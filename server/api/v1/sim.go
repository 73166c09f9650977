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

package v1

import (
	"fmt"
	"net/http"

	"github.com/zintix-labs/vegas21"
	"github.com/zintix-labs/vegas21/dto"
	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/sdk/core"
	"github.com/zintix-labs/vegas21/server/httperr"
	"github.com/zintix-labs/vegas21/server/svrcfg"
	"github.com/zintix-labs/vegas21/stats"
)

// SimHandler 以牌桌房規跑基本策略模擬
type SimHandler struct {
	c          *vegas21.Casino
	maxHands   int
	maxWorkers int
}

func NewSimHandler(sCfg *svrcfg.SvrCfg) *SimHandler {
	return &SimHandler{c: sCfg.Casino, maxHands: sCfg.MaxSimHands, maxWorkers: sCfg.MaxSimWorkers}
}

func (sh *SimHandler) Sim(w http.ResponseWriter, r *http.Request) {
	// 內部結構 不影響外部
	type SimResponse struct {
		Seed     int64         `json:"seed"`
		Workers  int           `json:"workers"`
		Stats    *stats.Report `json:"stats"`
		UsedTime int64         `json:"used_ms"`
	}

	req, err := dto.DecodeSimRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if req.Hands < 1 || req.Hands > sh.maxHands {
		httperr.Errs(w, errs.NewWarn(fmt.Sprintf("hands must be between 1 to %d", sh.maxHands)))
		return
	}
	if req.Workers == 0 {
		req.Workers = 1
	}
	if req.Workers < 1 || req.Workers > sh.maxWorkers {
		httperr.Errs(w, errs.NewWarn(fmt.Sprintf("workers must be between 1 to %d", sh.maxWorkers)))
		return
	}
	seed := core.RandomSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	sim, err := vegas21.NewSimulator(sh.c.Rules(), nil, nil)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "build simulator err"))
		return
	}
	rep, used, err := sim.Run(r.Context(), vegas21.SimConfig{
		Hands:   req.Hands,
		Workers: req.Workers,
		Bet:     req.Bet,
		Seed:    seed,
	})
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	reply(w, http.StatusOK, SimResponse{Seed: seed, Workers: req.Workers, Stats: rep, UsedTime: used.Milliseconds()})
}
