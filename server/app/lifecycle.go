// Package app 管理長期運行元件的最小生命週期抽象。
package app

import (
	"context"
	"sync"
)

// Component 任何「可啟動 / 可關閉」的長生命週期元件。
//   - Run() 阻塞直到元件停止（正常或錯誤）。
//   - Shutdown(ctx) 要求優雅關閉，實作應尊重 ctx deadline。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// Closer 把「只需要在關閉時收尾」的資源包成 Component：
// Run 阻塞到 Shutdown 被呼叫，Shutdown 執行 fn（只執行一次）。
type Closer struct {
	fn   func(ctx context.Context) error
	once sync.Once
	done chan struct{}
	err  error
}

func NewCloser(fn func(ctx context.Context) error) *Closer {
	return &Closer{fn: fn, done: make(chan struct{})}
}

func (c *Closer) Run() error {
	<-c.done
	return nil
}

func (c *Closer) Shutdown(ctx context.Context) error {
	c.once.Do(func() {
		if c.fn != nil {
			c.err = c.fn(ctx)
		}
		close(c.done)
	})
	return c.err
}
