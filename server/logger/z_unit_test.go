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

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogMode(t *testing.T) {
	cases := map[string]LogMode{"": ModeDev, "DEV": ModeDev, "prod": ModeProd, "silence": ModeSilence}
	for in, want := range cases {
		got, err := ParseLogMode(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseLogMode("loud"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	var m LogMode
	if err := m.UnmarshalText([]byte("prod")); err != nil || m != ModeProd {
		t.Fatalf("unmarshal text: %s %v", m, err)
	}
}

func TestAsyncHandlerFlushesOnClose(t *testing.T) {
	var buf bytes.Buffer
	log, ah := NewAsyncTo(&buf, 64, ModeProd)
	for i := 0; i < 10; i++ {
		log.Info("blackjack.settle", slog.Int("i", i))
	}
	log.Debug("hidden")
	ah.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d:\n%s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil || rec["msg"] != "blackjack.settle" {
		t.Fatalf("unexpected record: %s (%v)", lines[0], err)
	}

	log.Info("after close")
	if ah.Dropped() != 1 {
		t.Fatalf("expected one dropped record after close, got %d", ah.Dropped())
	}
	ah.Close()
}
