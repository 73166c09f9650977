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
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/zintix-labs/vegas21"
	"github.com/zintix-labs/vegas21/configs"
	"github.com/zintix-labs/vegas21/sdk/core"
	"github.com/zintix-labs/vegas21/sdk/perf"
	"github.com/zintix-labs/vegas21/spec"
	"github.com/zintix-labs/vegas21/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	hands     int
	worker    int
	bet       int
	seed      int64
	rules     string
	out       string
	pprofmode string
}

func main() {
	bindVar()
	perf.RunPProf(executeSimulator, cfg.pprofmode)
}

func bindVar() {
	flag.IntVar(&cfg.hands, "hands", 1000000, "number of hands")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.bet, "bet", 0, "bet per hand, 0 uses the table default")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.StringVar(&cfg.rules, "rules", "", "house rules file (.yaml|.yml|.json)")
	flag.StringVar(&cfg.out, "out", "text", "report format: text, json, yaml")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	if cfg.seed < 1 {
		cfg.seed = core.RandomSeed()
	}
}

func executeSimulator() {
	cfg.valid()

	ts, err := cfg.loadRules()
	if err != nil {
		log.Fatal(err)
	}
	sim, err := vegas21.NewSimulator(ts, core.Default(), vegas21.BasicStrategy{})
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	text := cfg.out == "text"
	if text {
		p.Printf("%s[TABLE:%s] [WORKERS:%d] [HANDS:%d] [SEED:%d]%s\n", green, ts.TableName, cfg.worker, cfg.hands, cfg.seed, reset)
	}

	rep, used, err := sim.Run(ctx, vegas21.SimConfig{
		Hands:   cfg.hands,
		Workers: cfg.worker,
		Bet:     cfg.bet,
		Seed:    cfg.seed,
		ShowPB:  text,
	})
	if err != nil {
		log.Fatal(err)
	}
	if text {
		rep.StdOut(used)
		return
	}
	if err := rep.WriteWith(os.Stdout, stats.RenderByName(cfg.out)); err != nil {
		log.Fatal(err)
	}
}

func (cfg *config) valid() {
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}
	if cfg.hands < 1 {
		log.Fatal("value err : hands must > 0")
	}
	switch cfg.out {
	case "text", "json", "yaml", "yml":
	default:
		log.Fatalf("value err : unknown output format %q", cfg.out)
	}
}

func (cfg *config) loadRules() (*spec.TableSetting, error) {
	if cfg.rules == "" {
		return spec.GetTableSettingByYAML(configs.DefaultTable)
	}
	return vegas21.LoadRules(os.DirFS(filepath.Dir(cfg.rules)), filepath.Base(cfg.rules))
}
