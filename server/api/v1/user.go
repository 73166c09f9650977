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
	"log/slog"
	"net/http"
	"strconv"

	"github.com/zintix-labs/vegas21"
	"github.com/zintix-labs/vegas21/dto"
	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/server/httperr"
	"github.com/zintix-labs/vegas21/server/svrcfg"
)

const defaultLeaderboardSize = 10

// UserHandler 帳戶與排行榜
type UserHandler struct {
	c   *vegas21.Casino
	log *slog.Logger
}

func NewUserHandler(sCfg *svrcfg.SvrCfg) *UserHandler {
	return &UserHandler{c: sCfg.Casino, log: sCfg.Log}
}

// Init 開戶；已存在時回傳現有帳戶。
func (h *UserHandler) Init(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeActionRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	acc := h.c.InitUser(req.Username)
	h.log.Debug("user.init", slog.String("player", acc.Username), slog.Int("balance", acc.Balance))
	reply(w, http.StatusOK, dto.NewAccount(acc))
}

func (h *UserHandler) Balance(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeActionRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	bal, err := h.c.Balance(r.Context(), req.Username)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	reply(w, http.StatusOK, dto.BalanceResponse{Username: req.Username, Balance: bal})
}

func (h *UserHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeTopUpRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	acc, err := h.c.TopUp(req.Username, req.Amount)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	h.log.Info("user.topup", slog.String("player", acc.Username), slog.Int("balance", acc.Balance))
	reply(w, http.StatusOK, dto.NewAccount(acc))
}

// Leaderboard ?n= 前 n 名（預設 10）
func (h *UserHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	n := defaultLeaderboardSize
	if s := r.URL.Query().Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			httperr.Errs(w, errs.NewWarn("n must be a positive integer"))
			return
		}
		n = v
	}
	reply(w, http.StatusOK, dto.NewLeaderboard(h.c.Leaderboard(n)))
}
