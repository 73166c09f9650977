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

package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/vegas21/dto"
	"github.com/zintix-labs/vegas21/errs"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.New(errs.InsufficientFunds, "x"), http.StatusPaymentRequired},
		{errs.New(errs.NoActiveHand, "x"), http.StatusNotFound},
		{errs.New(errs.InvalidAction, "x"), http.StatusConflict},
		{errs.New(errs.SessionAlreadyActive, "x"), http.StatusConflict},
		{errs.New(errs.InvalidBet, "x"), http.StatusBadRequest},
		{errs.NewWarn("bad input"), http.StatusBadRequest},
		{errs.New(errs.EmptyDeck, "x"), http.StatusInternalServerError},
		{errs.NewFatal("x"), http.StatusInternalServerError},
		{errs.Wrap(errs.New(errs.NoActiveHand, "x"), "outer"), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", errs.New(errs.InsufficientFunds, "x")), http.StatusPaymentRequired},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("op: %w", context.Canceled), http.StatusRequestTimeout},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for i, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("case %d (%v): expected %d, got %d", i, c.err, c.want, got)
		}
	}
}

func TestErrsWritesJSON(t *testing.T) {
	w := httptest.NewRecorder()
	Errs(w, errs.NewWithExtra(errs.InsufficientFunds, "insufficient balance", "alice"))
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}
	var resp dto.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Kind != "insufficient_funds" || resp.Error == "" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	w = httptest.NewRecorder()
	Errs(w, errs.NewFatal("secret detail"))
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("5xx must not leak details, got %q", resp.Error)
	}
}
