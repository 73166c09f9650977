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
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Usage: go run ./scripts <task>
//
//	test         go test ./... -cover -count=1，只顯示 ok / FAIL
//	test-detail  go test ./... -v -count=1，略過沒有測試檔的套件
//	sim          以預設房規跑 100 萬手基本策略
//	pgo          跑一次 CPU profiling 模擬，輸出 cmd/svr/default.pgo
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./scripts [test|test-detail|sim|pgo]")
		os.Exit(1)
	}
	var err error
	switch task := os.Args[1]; task {
	case "test":
		err = goTest(func(l string) bool { return strings.HasPrefix(l, "ok") || strings.HasPrefix(l, "FAIL") }, "-cover")
	case "test-detail":
		err = goTest(func(l string) bool { return !strings.Contains(l, "[no test files]") }, "-v")
	case "sim":
		err = run("go", "run", "./cmd/sim", "-hands", "1000000", "-worker", "8")
	case "pgo":
		err = pgo()
	default:
		colored(colorYellow, "Unknown task: "+task)
		os.Exit(1)
	}
	if err != nil {
		colored(colorRed, err.Error())
		os.Exit(1)
	}
}

const (
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

func colored(color, msg string) { fmt.Printf("%s%s%s\n", color, msg, colorReset) }

func run(name string, args ...string) error {
	colored(colorGreen, name+" "+strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// goTest 清除 test cache 後執行測試，stdout/stderr 合併後逐行過濾。
// 編譯錯誤不是以 ok/FAIL 開頭，build failed / setup failed 一律顯示。
func goTest(keep func(string) bool, flags ...string) error {
	if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
		colored(colorRed, err.Error())
	}
	cmd := exec.Command("go", append([]string{"test", "./...", "-count=1"}, flags...)...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "ok"):
			colored(colorGreen, line)
		case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "build failed"), strings.Contains(line, "setup failed"):
			colored(colorRed, line)
		case keep(line):
			fmt.Println(line)
		}
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("tests finished with errors")
	}
	return nil
}

func pgo() error {
	if err := run("go", "run", "./cmd/sim", "-hands", "2000000", "-worker", "4", "-out", "json", "-p", "cpu"); err != nil {
		return err
	}
	src, err := os.Open("build/profiling/cpu.pprof")
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create("cmd/svr/default.pgo")
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}
