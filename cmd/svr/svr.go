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

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/zintix-labs/vegas21"
	"github.com/zintix-labs/vegas21/configs"
	"github.com/zintix-labs/vegas21/server"
	"github.com/zintix-labs/vegas21/server/logger"
	"github.com/zintix-labs/vegas21/server/svrcfg"
	"github.com/zintix-labs/vegas21/spec"
)

// 設定來源優先序：flag > 環境變數 > .env > 預設值
func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, ah := logger.NewAsync(4096, cfg.LogMode)
	defer ah.Close()

	c, err := cfg.casino(log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sCfg := &svrcfg.SvrCfg{
		Log:    log,
		Casino: c,
		Addr:   cfg.Addr,
	}
	if err := server.Run(sCfg); err != nil {
		ah.Close()
		os.Exit(1)
	}
}

type config struct {
	Addr         string         `env:"VEGAS21_ADDR" envDefault:":8021"`
	LogMode      logger.LogMode `env:"VEGAS21_LOG_MODE" envDefault:"dev"`
	Rules        string         `env:"VEGAS21_RULES"`
	StartBalance int            `env:"VEGAS21_START_BALANCE"`
	Seed         int64          `env:"VEGAS21_SEED"`
}

func loadConfig(args []string) (*config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("svr", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.TextVar(&cfg.LogMode, "log-mode", cfg.LogMode, "log mode: dev|prod|silence")
	fs.StringVar(&cfg.Rules, "rules", cfg.Rules, "house rules file (.yaml|.yml|.json), empty uses the embedded default")
	fs.IntVar(&cfg.StartBalance, "start-balance", cfg.StartBalance, "starting balance of new players, 0 keeps the rules value")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base seed of the table, 0 picks a random one")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *config) casino(log *slog.Logger) (*vegas21.Casino, error) {
	opts := []vegas21.Option{vegas21.WithLogger(log)}
	if cfg.Seed != 0 {
		opts = append(opts, vegas21.WithSeed(cfg.Seed))
	}
	if cfg.Rules != "" || cfg.StartBalance > 0 {
		ts, err := cfg.rules()
		if err != nil {
			return nil, err
		}
		opts = append(opts, vegas21.WithRules(ts))
	}
	return vegas21.New(opts...)
}

func (cfg *config) rules() (*spec.TableSetting, error) {
	var ts *spec.TableSetting
	var err error
	if cfg.Rules == "" {
		ts, err = spec.GetTableSettingByYAML(configs.DefaultTable)
	} else {
		ts, err = vegas21.LoadRules(os.DirFS(filepath.Dir(cfg.Rules)), filepath.Base(cfg.Rules))
	}
	if err != nil {
		return nil, err
	}
	if cfg.StartBalance > 0 {
		ts.StartBalance = cfg.StartBalance
	}
	return ts, nil
}
