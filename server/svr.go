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

// Package server 是 HTTP 服務的組裝器與啟動入口：驗證 SvrCfg、建立 chi server、
// 註冊路由，並交給 app.App 管理啟停。
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/vegas21/errs"
	"github.com/zintix-labs/vegas21/server/api"
	"github.com/zintix-labs/vegas21/server/app"
	"github.com/zintix-labs/vegas21/server/netsvr"
	"github.com/zintix-labs/vegas21/server/svrcfg"
)

// Run 以內建 ChiAdapter（監聽 sCfg.Addr）啟動服務，阻塞到收到終止信號。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// logger 可能還不可用
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return RunWithSvr(sCfg, netsvr.NewChiServer(sCfg.Addr))
}

// RunWithSvr 與 Run 相同，但允許注入自訂的 NetSvr（自訂 listener、timeout 或掛到既有服務）。
// 關閉順序：先停 HTTP，再關閉 Casino。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	a, err := Assemble(sCfg, svr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok {
		sCfg.Log.Info("[vegas21] listening on http://localhost"+s.Address(),
			slog.String("table", sCfg.Casino.Rules().TableName),
			slog.Int64("seed", sCfg.Casino.Seed()),
		)
	}
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}

// Assemble 註冊路由並回傳尚未啟動的 App，方便呼叫端自行控制 Run / RunContext。
func Assemble(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) (*app.App, error) {
	if err := sCfg.Valid(); err != nil {
		return nil, err
	}
	if svr == nil {
		return nil, errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return nil, errs.NewFatal("default server is not ready")
	}

	api.RegisterRoutes(svr, sCfg)

	casino := sCfg.Casino
	closer := app.NewCloser(func(context.Context) error {
		casino.CloseWithReason("server shutdown")
		return nil
	})
	return app.NewWith(svr, closer).WithLogger(sCfg.Log), nil
}
