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

// Package httperr 是 HTTP 邊界層的錯誤映射：決定狀態碼並寫回 JSON 錯誤。
// 放在 server/* 而不是 errs，核心錯誤包不依賴 net/http。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/vegas21/dto"
	"github.com/zintix-labs/vegas21/errs"
)

// StatusCode 將錯誤映射成 HTTP status code。
//
// 規則：
//   - ctx timeout/cancel → 504/408
//   - 領域錯誤依 Kind：餘額不足 402、沒有牌局 404、動作不合法 409
//   - 其餘 errs.Warn → 400，errs.Fatal → 500
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	e, ok := errs.AsErr(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case errs.InsufficientFunds:
		return http.StatusPaymentRequired
	case errs.NoActiveHand:
		return http.StatusNotFound
	case errs.InvalidAction, errs.SessionAlreadyActive:
		return http.StatusConflict
	case errs.InvalidBet:
		return http.StatusBadRequest
	}
	if e.ErrLv == errs.Warn || e.ErrLv == errs.Log {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Errs 寫回 JSON 錯誤。5xx 不揭露內部訊息。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	resp := dto.ErrorResponse{Error: err.Error(), Kind: errs.KindOf(err).String()}
	if status >= http.StatusInternalServerError && status != http.StatusGatewayTimeout {
		resp.Error = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Log 依狀態碼決定是否記錄：408/409 為 warn，5xx 為 error，其他（一般請求錯誤）不記。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	switch {
	case status == http.StatusRequestTimeout || status == http.StatusConflict:
		log.Warn(msg, slog.Int("status", status), slog.Any("err", err))
	case status >= 500:
		log.Error(msg, slog.Int("status", status), slog.Any("err", err))
	}
}
