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
	"sync/atomic"
	"testing"
	"time"
)

type failing struct {
	closed atomic.Bool
}

func (f *failing) Run() error { return errors.New("listen failed") }

func (f *failing) Shutdown(context.Context) error {
	f.closed.Store(true)
	return nil
}

func TestRunContextStopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	c := NewCloser(func(context.Context) error {
		calls.Add(1)
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWith(c).RunContext(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("app did not stop")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected closer to run once, got %d", calls.Load())
	}
	// 重複關閉不會再執行
	_ = c.Shutdown(context.Background())
	if calls.Load() != 1 {
		t.Fatalf("closer ran twice")
	}
}

func TestRunReturnsComponentError(t *testing.T) {
	f := &failing{}
	c := NewCloser(nil)
	err := NewWith(f, c).RunContext(context.Background())
	if err == nil || err.Error() != "listen failed" {
		t.Fatalf("expected component error, got %v", err)
	}
	if !f.closed.Load() {
		t.Fatalf("components must be shut down after an error")
	}
}
