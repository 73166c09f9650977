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

package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// DefaultShutdownTimeout 優雅關閉的總時限
const DefaultShutdownTimeout = 5 * time.Second

// App 啟動所有註冊的 Component，收到 OS 信號、ctx 結束或任一 Component 返回時，
// 依註冊順序關閉全部元件。
type App struct {
	comps   []Component
	log     *slog.Logger
	timeout time.Duration
}

func New() *App {
	return &App{log: slog.New(slog.DiscardHandler), timeout: DefaultShutdownTimeout}
}

// NewWith 建立並註冊多個 Component
func NewWith(comps ...Component) *App {
	app := New()
	for _, c := range comps {
		app.Register(c)
	}
	return app
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// WithLogger 關閉過程的錯誤寫到 log
func (a *App) WithLogger(log *slog.Logger) *App {
	if log != nil {
		a.log = log
	}
	return a
}

func (a *App) WithShutdownTimeout(d time.Duration) *App {
	if d > 0 {
		a.timeout = d
	}
	return a
}

// Run 阻塞直到 SIGINT/SIGTERM 或任一 Component 返回。
// 收到信號視為正常結束回傳 nil；Component 返回錯誤時回傳該錯誤。
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext 與 Run 相同，但以 ctx 結束取代 OS 信號。
func (a *App) RunContext(ctx context.Context) error {
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}
	return errors.Join(err, a.shutdown())
}

// shutdown 在時限內依序呼叫 Shutdown，回傳所有錯誤。
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	var all []error
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			a.log.Error("app.shutdown", slog.Any("err", err))
			all = append(all, err)
		}
	}
	return errors.Join(all...)
}
