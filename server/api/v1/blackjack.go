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
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/vegas21"
	"github.com/zintix-labs/vegas21/dto"
	"github.com/zintix-labs/vegas21/server/httperr"
	"github.com/zintix-labs/vegas21/server/svrcfg"
	"github.com/zintix-labs/vegas21/stats"
)

// BlackjackHandler 牌桌動作
type BlackjackHandler struct {
	c       *vegas21.Casino
	log     *slog.Logger
	timeout time.Duration
}

func NewBlackjackHandler(sCfg *svrcfg.SvrCfg) *BlackjackHandler {
	return &BlackjackHandler{c: sCfg.Casino, log: sCfg.Log, timeout: sCfg.RequestTimeout}
}

// ctx 每個動作都有自己的逾時；結算本身不受逾時影響。
func (h *BlackjackHandler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *BlackjackHandler) fail(w http.ResponseWriter, action string, err error) {
	httperr.Log(h.log, "blackjack."+action, err)
	httperr.Errs(w, err)
}

func (h *BlackjackHandler) Deal(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeDealRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()

	res, err := h.c.Deal(ctx, req.Username, req.BetOr(h.c.Rules().DefaultBet))
	if err != nil {
		h.fail(w, "deal", err)
		return
	}
	reply(w, http.StatusOK, dto.NewDealResponse(req.Username, res))
}

func (h *BlackjackHandler) Hit(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeActionRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()

	res, err := h.c.Hit(ctx, req.Username)
	if err != nil {
		h.fail(w, "hit", err)
		return
	}
	reply(w, http.StatusOK, dto.NewHitResponse(req.Username, res))
}

func (h *BlackjackHandler) Stand(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeActionRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()

	st, err := h.c.Stand(ctx, req.Username)
	if err != nil {
		h.fail(w, "stand", err)
		return
	}
	reply(w, http.StatusOK, dto.NewStandResponse(req.Username, st))
}

func (h *BlackjackHandler) Double(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeActionRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()

	res, err := h.c.Double(ctx, req.Username)
	if err != nil {
		h.fail(w, "double", err)
		return
	}
	reply(w, http.StatusOK, dto.NewDoubleResponse(req.Username, res))
}

// State 目前牌局；沒有牌局回 404。
func (h *BlackjackHandler) State(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeActionRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	v, err := h.c.State(r.Context(), req.Username)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	reply(w, http.StatusOK, dto.NewStateResponse(req.Username, v))
}

// Stats 牌桌即時統計，?format=json|yaml|text（預設 json）。
func (h *BlackjackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	rep := h.c.Stats()
	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		reply(w, http.StatusOK, rep)
		return
	}
	var b bytes.Buffer
	if err := rep.WriteWith(&b, stats.RenderByName(format)); err != nil {
		httperr.Errs(w, err)
		return
	}
	ct := "text/plain; charset=utf-8"
	if format == "yaml" || format == "yml" {
		ct = "application/yaml"
	}
	w.Header().Set("Content-Type", ct)
	_, _ = w.Write(b.Bytes())
}
