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

package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// Kind : 牌桌錯誤的固定詞彙，邊界層（HTTP）依此決定回應碼。
type Kind uint8

const (
	KindUnknown Kind = iota
	InsufficientFunds
	NoActiveHand
	InvalidAction
	SessionAlreadyActive
	EmptyDeck
	InvalidBet
	Internal
)

var kindMap = map[Kind]string{
	KindUnknown:          "",
	InsufficientFunds:    "insufficient_funds",
	NoActiveHand:         "no_active_hand",
	InvalidAction:        "invalid_action",
	SessionAlreadyActive: "session_already_active",
	EmptyDeck:            "empty_deck",
	InvalidBet:           "invalid_bet",
	Internal:             "internal",
}

func (k Kind) String() string {
	if str, ok := kindMap[k]; ok {
		return str
	}
	return ""
}

// E 是統一的錯誤型別。
// Kind 為錯誤類別；Message 為主訊息；Extra 為呼叫端可追加的額外上下文；
// Cause 可串接下層錯誤（wrap）；ErrLv 表示嚴重程度。
type E struct {
	Kind    Kind
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Kind != KindUnknown {
		base = fmt.Sprintf("errlv=%s kind=%s %s", ErrLv(e.ErrLv), e.Kind, e.Message)
	}
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// Is 讓 errors.Is(err, errs.NoActiveHand.Err()) 這類比對只看 Kind。
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok || t.Kind == KindUnknown {
		return false
	}
	return e.Kind == t.Kind
}

// Err 回傳只帶 Kind 的哨兵錯誤，供 errors.Is 使用。
func (k Kind) Err() *E {
	return &E{Kind: k, Message: k.String(), ErrLv: levelOf(k)}
}

// levelOf : 呼叫端造成的錯誤為 Warn；牌靴耗盡與內部錯誤代表程式缺陷，一律 Fatal。
func levelOf(k Kind) ErrLevel {
	switch k {
	case EmptyDeck, Internal, KindUnknown:
		return Fatal
	default:
		return Warn
	}
}

// New 依錯誤類別與訊息建立錯誤，嚴重度由類別決定。
func New(kind Kind, msg string) *E {
	return &E{Kind: kind, Message: msg, ErrLv: levelOf(kind)}
}

// Newf 與 New 相同，訊息以格式字串組成。
func Newf(kind Kind, format string, a ...any) *E {
	return New(kind, fmt.Sprintf(format, a...))
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func NewLog(msg string) *E {
	return &E{Message: msg, ErrLv: Log}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

// NewWithExtra 與 New 相同，但可附加額外上下文字串（不影響主訊息）。
func NewWithExtra(kind Kind, msg string, extra string) *E {
	e := New(kind, msg)
	e.Extra = extra
	return e
}

// Wrap 使用給定的訊息包裝底層錯誤，建立一個 *E。
//
// 規則：
//   - 若 cause 已經是 *E，則沿用其 Kind 與 ErrLv。
//   - 若 cause 不是本包定義的 *E（多半是標準庫或三方依賴錯誤），則視為 Internal / Fatal。
func Wrap(cause error, msg string) *E {
	r := &E{Kind: Internal, Message: msg, ErrLv: Fatal, Cause: cause}
	if e, ok := AsErr(cause); ok {
		r.Kind = e.Kind
		r.ErrLv = e.ErrLv
	}
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// KindOf 取出錯誤鏈上第一個 *E 的 Kind；非本包錯誤回傳 KindUnknown。
func KindOf(err error) Kind {
	if e, ok := AsErr(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// IsKind 回報 err 是否屬於指定類別。
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
