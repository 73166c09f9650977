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

// Package logger 組裝 server 使用的 slog.Logger，並提供非阻塞的 AsyncHandler。
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// LogMode 日誌輸出模式
type LogMode uint8

const (
	ModeDev     LogMode = iota // text、debug、stderr
	ModeProd                   // JSON、info、stdout
	ModeSilence                // 全部丟棄
)

var modeName = map[LogMode]string{
	ModeDev:     "dev",
	ModeProd:    "prod",
	ModeSilence: "silence",
}

func (m LogMode) String() string {
	if s, ok := modeName[m]; ok {
		return s
	}
	return fmt.Sprintf("LogMode(%d)", uint8(m))
}

// ParseLogMode 解析 dev / prod / silence（不分大小寫）。
func ParseLogMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev", "development":
		return ModeDev, nil
	case "prod", "production":
		return ModeProd, nil
	case "silence", "silent", "off":
		return ModeSilence, nil
	default:
		return ModeDev, fmt.Errorf("unknown log mode %q", s)
	}
}

func (m LogMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText 讓 LogMode 可以直接作為環境變數欄位解析。
func (m *LogMode) UnmarshalText(b []byte) error {
	v, err := ParseLogMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// NewDefaultLogger 依 LogMode 建立同步 logger
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode, nil))
}

// NewAsync 依 LogMode 建立 logger，並以 AsyncHandler 包裝成非阻塞。
// 呼叫端在結束前應呼叫 AsyncHandler.Close() 把緩衝中的紀錄寫完。
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(buildHandler(mode, nil), buf)
	return slog.New(ah), ah
}

// NewAsyncTo 與 NewAsync 相同，但輸出到指定的 writer（測試或檔案輸出用）。
func NewAsyncTo(w io.Writer, buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(buildHandler(mode, w), buf)
	return slog.New(ah), ah
}

// AsyncHandler 包裝任意 slog.Handler：
//   - Handle 只做 enqueue，由背景 goroutine 逐筆寫出。
//   - 佇列滿時丟棄並計數，不把 I/O 延遲帶回請求路徑。
//
// slog.Logger 會忽略 Handle 回傳的 error，I/O 錯誤需由 next 自行處理。
type AsyncHandler struct {
	next slog.Handler
	d    *asyncDispatcher
}

type asyncDispatcher struct {
	ch      chan asyncItem
	closed  chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

type asyncItem struct {
	ctx     context.Context
	rec     slog.Record
	handler slog.Handler
}

// NewAsyncHandler buf <= 0 時使用 1024。
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev, nil)
	}
	if buf <= 0 {
		buf = 1024
	}
	d := &asyncDispatcher{
		ch:     make(chan asyncItem, buf),
		closed: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.worker()
	return &AsyncHandler{next: next, d: d}
}

func (h *AsyncHandler) Ready() bool {
	return h != nil && h.d != nil
}

// Dropped 因佇列已滿或已關閉而丟棄的筆數
func (h *AsyncHandler) Dropped() uint64 {
	if !h.Ready() {
		return 0
	}
	return h.d.dropped.Load()
}

// Close 停止接收並把佇列內的紀錄寫完。可重複呼叫。
func (h *AsyncHandler) Close() {
	if !h.Ready() {
		return
	}
	h.d.once.Do(func() { close(h.d.closed) })
	h.d.wg.Wait()
}

func (d *asyncDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case it := <-d.ch:
			it.write()
		case <-d.closed:
			for {
				select {
				case it := <-d.ch:
					it.write()
				default:
					return
				}
			}
		}
	}
}

func (it asyncItem) write() {
	if it.handler != nil {
		_ = it.handler.Handle(it.ctx, it.rec)
	}
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Ready() {
		return nil
	}
	select {
	case <-h.d.closed:
		h.d.dropped.Add(1)
		return nil
	default:
	}

	// 背景寫出時請求可能已結束，不沿用請求的取消訊號
	it := asyncItem{ctx: context.WithoutCancel(ctx), rec: r.Clone(), handler: h.next}
	select {
	case h.d.ch <- it:
	default:
		h.d.dropped.Add(1)
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), d: h.d}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), d: h.d}
}

// buildHandler w 為 nil 時依模式選擇 stderr / stdout。
func buildHandler(mode LogMode, w io.Writer) slog.Handler {
	switch mode {
	case ModeProd:
		if w == nil {
			w = os.Stdout
		}
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.DiscardHandler
	default:
		if w == nil {
			w = os.Stderr
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
