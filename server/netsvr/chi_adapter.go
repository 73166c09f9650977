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

package netsvr

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// DefaultAddr 預設監聽位址
const DefaultAddr string = ":8021"

// ChiAdapter 以 chi 實作 NetSvr，handler 與 middleware 都是標準 net/http 介面。
type ChiAdapter struct {
	router chi.Router
	server *http.Server
	addr   string
}

// NewChiServer 建立 ChiAdapter；addr 為空時使用 DefaultAddr。
func NewChiServer(addr string) *ChiAdapter {
	if addr == "" {
		addr = DefaultAddr
	}
	cr := chi.NewRouter()
	return &ChiAdapter{
		router: cr,
		server: &http.Server{
			Addr:              addr,
			Handler:           cr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second, // 模擬請求可能跑數秒
			IdleTimeout:       120 * time.Second,
		},
		addr: addr,
	}
}

// NewChiServerDefault 監聽 DefaultAddr
func NewChiServerDefault() *ChiAdapter {
	return NewChiServer(DefaultAddr)
}

// -----------------------------------------------------------------------------
//  NetSvr / Component
// -----------------------------------------------------------------------------

func (c *ChiAdapter) Ready() bool {
	return (c != nil) && (c.router != nil) && (c.server != nil) &&
		strings.Contains(c.addr, ":") &&
		(c.server.Handler == c.router)
}

// Run 阻塞直到 server 關閉；正常 Shutdown 不視為錯誤。
func (c *ChiAdapter) Run() error {
	if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (c *ChiAdapter) Shutdown(ctx context.Context) error {
	return c.server.Shutdown(ctx)
}

func (c *ChiAdapter) Use(mw func(http.Handler) http.Handler) {
	c.router.Use(mw)
}

func (c *ChiAdapter) Get(path string, h http.HandlerFunc) {
	c.router.Get(path, h)
}

func (c *ChiAdapter) Post(path string, h http.HandlerFunc) {
	c.router.Post(path, h)
}

func (c *ChiAdapter) Put(path string, h http.HandlerFunc) {
	c.router.Put(path, h)
}

func (c *ChiAdapter) Delete(path string, h http.HandlerFunc) {
	c.router.Delete(path, h)
}

func (c *ChiAdapter) Group(path string, fn func(subRouter NetRouter)) {
	c.router.Route(path, func(r chi.Router) {
		fn(&ChiAdapter{router: r})
	})
}

// -----------------------------------------------------------------------------
//  其他
// -----------------------------------------------------------------------------

// ServeHTTP 讓 adapter 可以直接掛進 httptest 或其他 server。
func (c *ChiAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.router.ServeHTTP(w, r)
}

func (c *ChiAdapter) Address() string {
	return c.addr
}

// Route 已註冊的路由
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Routes 列出所有已註冊路由，依 path、method 排序。
func (c *ChiAdapter) Routes() []Route {
	out := make([]Route, 0, 16)
	_ = chi.Walk(c.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, Route{Method: method, Path: strings.TrimSuffix(route, "/*")})
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
