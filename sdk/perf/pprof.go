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

// Package perf 包裝 runtime/pprof，讓模擬器可以選擇性地輸出 profile。
package perf

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
)

// Dir pprof 檔案寫入路徑
var Dir = "build/profiling"

// RunPProf 依 mode 執行 exe：空字串直接執行；cpu / heap / allocs 會在 Dir 下寫出對應的 profile。
// profile 寫入失敗只記錄，不影響 exe 的結果。
//
// Usage like:
//
//	go run ./cmd/sim -p cpu
//	go tool pprof build/profiling/cpu.pprof
func RunPProf(exe func(), mode string) {
	var err error
	switch mode {
	case "cpu":
		err = CPU(exe)
	case "heap":
		err = Snapshot(exe, "heap")
	case "allocs":
		err = Snapshot(exe, "allocs")
	default:
		exe()
	}
	if err != nil {
		log.Printf("pprof %s: %v", mode, err)
	}
}

// CPU 在 exe 執行期間開啟 CPU profiling，輸出 cpu.pprof（也可作為 PGO 的 default.pgo）。
func CPU(exe func()) error {
	f, err := create("cpu")
	if err != nil {
		exe()
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		exe()
		return err
	}
	exe()
	pprof.StopCPUProfile()
	return nil
}

// Snapshot 在 exe 結束後寫出一次 heap（in-use）或 allocs（累積配置）profile。
// heap 快照前先 GC，讓 live objects 貼近最新狀態。
func Snapshot(exe func(), name string) error {
	exe()
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile %q", name)
	}
	if name == "heap" {
		runtime.GC()
	}
	f, err := create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return prof.WriteTo(f, 0)
}

func create(name string) (*os.File, error) {
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(Dir, name+".pprof"))
}
