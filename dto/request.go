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

package dto

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zintix-labs/vegas21/errs"
)

// Anonymous 未帶 username 時使用的玩家名稱
const Anonymous = "Anonymous"

// maxBody POST body 上限（1MiB）
const maxBody = 1 << 20

// DealRequest 開局請求。Bet 省略時由上層套用房規的 default_bet。
type DealRequest struct {
	Username string `json:"username"`
	Bet      *int   `json:"bet,omitempty"`
}

// BetOr 回傳請求的注額，未提供時回傳 def。
func (r *DealRequest) BetOr(def int) int {
	if r.Bet == nil {
		return def
	}
	return *r.Bet
}

// ActionRequest hit / stand / double / state / balance 等只需要玩家名稱的請求
type ActionRequest struct {
	Username string `json:"username"`
}

// TopUpRequest 儲值請求；Amount 為 0 時使用房規 default_topup。
type TopUpRequest struct {
	Username string `json:"username"`
	Amount   int    `json:"amount,omitempty"`
}

// SimRequest 模擬請求
type SimRequest struct {
	Hands   int    `json:"hands"`
	Workers int    `json:"workers,omitempty"`
	Bet     int    `json:"bet,omitempty"`
	Seed    *int64 `json:"seed,omitempty"`
}

// DecodeDealRequest 解碼開局請求。
//
// 支援：
//   - GET：query string（username / bet）。
//   - POST：JSON body，未知欄位直接拒絕。
func DecodeDealRequest(r *http.Request) (*DealRequest, error) {
	req, err := decode(r, func(q url.Values, req *DealRequest) error {
		req.Username = q.Get("username")
		if s := q.Get("bet"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return errs.New(errs.InvalidBet, "invalid bet: "+s)
			}
			req.Bet = &v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	req.Username = username(req.Username)
	return req, nil
}

func DecodeActionRequest(r *http.Request) (*ActionRequest, error) {
	req, err := decode(r, func(q url.Values, req *ActionRequest) error {
		req.Username = q.Get("username")
		return nil
	})
	if err != nil {
		return nil, err
	}
	req.Username = username(req.Username)
	return req, nil
}

func DecodeTopUpRequest(r *http.Request) (*TopUpRequest, error) {
	req, err := decode(r, func(q url.Values, req *TopUpRequest) error {
		req.Username = q.Get("username")
		if s := q.Get("amount"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return errs.NewWarn("invalid amount: " + s)
			}
			req.Amount = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if req.Amount < 0 {
		return nil, errs.NewWarn("amount must >= 0")
	}
	req.Username = username(req.Username)
	return req, nil
}

// DecodeSimRequest 解碼模擬請求；只做型別轉換，範圍檢查由 handler 決定。
func DecodeSimRequest(r *http.Request) (*SimRequest, error) {
	return decode(r, func(q url.Values, req *SimRequest) error {
		for _, f := range []struct {
			key string
			dst *int
		}{
			{"hands", &req.Hands},
			{"workers", &req.Workers},
			{"bet", &req.Bet},
		} {
			if s := q.Get(f.key); s != "" {
				v, err := strconv.Atoi(s)
				if err != nil {
					return errs.NewWarn(f.key + " must be integer")
				}
				*f.dst = v
			}
		}
		if s := q.Get("seed"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return errs.NewWarn("seed must be int64")
			}
			req.Seed = &v
		}
		return nil
	})
}

// decode GET 走 query，POST 走 JSON body（大小限制 + DisallowUnknownFields）。
func decode[T any](r *http.Request, fromQuery func(url.Values, *T) error) (*T, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	req := new(T)
	switch r.Method {
	case http.MethodGet:
		if err := fromQuery(r.URL.Query(), req); err != nil {
			return nil, err
		}
		return req, nil
	case http.MethodPost:
		if r.Body == nil || r.Body == http.NoBody {
			return req, nil
		}
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil && err != io.EOF {
			return nil, errs.NewWarn("invalid json: " + err.Error())
		}
		return req, nil
	default:
		return nil, errs.NewWarn("method not allowed")
	}
}

func username(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Anonymous
	}
	return s
}
