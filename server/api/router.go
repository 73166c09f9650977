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

// Package api 把 handler 與 middleware 掛到 NetSvr 上。
package api

import (
	"log/slog"

	v1 "github.com/zintix-labs/vegas21/server/api/v1"
	"github.com/zintix-labs/vegas21/server/netsvr"
	"github.com/zintix-labs/vegas21/server/netsvr/middleware"
	"github.com/zintix-labs/vegas21/server/svrcfg"
)

// RegisterRoutes 註冊 middleware 與全部路由。sCfg 需已通過 Valid()。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) {
	registerMiddleware(svr, sCfg.Log) // 1. middleware
	registerIndex(svr, sCfg)          // 2. 主頁 / 健康檢查
	registerV1API(svr, sCfg)          // 3. v1 api
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

func registerIndex(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) {
	idx := newIndexHandler(svr, sCfg.Casino)
	svr.Get("/", idx.Index)
	svr.Get("/health", idx.Health)
}

func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) {
	bj := v1.NewBlackjackHandler(sCfg)
	user := v1.NewUserHandler(sCfg)
	sim := v1.NewSimHandler(sCfg)

	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Group("/blackjack", func(r netsvr.NetRouter) {
			r.Post("/deal", bj.Deal)
			r.Post("/hit", bj.Hit)
			r.Post("/stand", bj.Stand)
			r.Post("/double", bj.Double)
			r.Get("/state", bj.State)
			r.Get("/stats", bj.Stats)
		})
		vOne.Group("/user", func(r netsvr.NetRouter) {
			r.Post("/init", user.Init)
			r.Get("/balance", user.Balance)
			r.Post("/topup", user.TopUp)
		})
		vOne.Get("/leaderboard", user.Leaderboard)

		vOne.Get("/sim", sim.Sim)
		vOne.Post("/sim", sim.Sim)
	})
}
