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

package api

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/vegas21"
	"github.com/zintix-labs/vegas21/server/netsvr"
)

type indexHandler struct {
	svr netsvr.NetSvr
	c   *vegas21.Casino
}

func newIndexHandler(svr netsvr.NetSvr, c *vegas21.Casino) *indexHandler {
	return &indexHandler{svr: svr, c: c}
}

// Index 列出服務名稱、房規與所有路由
func (h *indexHandler) Index(w http.ResponseWriter, _ *http.Request) {
	resp := struct {
		Service string         `json:"service"`
		Table   string         `json:"table"`
		MinBet  int            `json:"min_bet"`
		MaxBet  int            `json:"max_bet"`
		Routes  []netsvr.Route `json:"routes"`
	}{
		Service: "vegas21",
		Table:   h.c.Rules().TableName,
		MinBet:  h.c.Rules().MinBet,
		MaxBet:  h.c.Rules().MaxBet,
		Routes:  h.svr.Routes(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Health Casino 已關閉時回 503
func (h *indexHandler) Health(w http.ResponseWriter, _ *http.Request) {
	status, code := "ok", http.StatusOK
	if h.c.Closed() {
		status, code = "closed", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":       status,
		"active_hands": h.c.Table().ActiveHands(),
	})
}
