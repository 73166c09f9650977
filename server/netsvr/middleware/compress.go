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

package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig 壓縮等級
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// Compression 依 Accept-Encoding 以 zstd 或 gzip 壓縮回應（zstd 優先），使用預設等級。
func Compression(next http.Handler) http.Handler {
	return defaultCompressor.handler(next)
}

// NewCompression 以指定等級建立壓縮 middleware
func NewCompression(cfg CompressConfig) func(http.Handler) http.Handler {
	return newCompressor(cfg).handler
}

var defaultCompressor = newCompressor(DefaultCompressConfig)

type compressor struct {
	cfg  CompressConfig
	gzip sync.Pool
	zstd sync.Pool
}

func newCompressor(cfg CompressConfig) *compressor {
	return &compressor{cfg: cfg}
}

func (c *compressor) handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || isUpgrade(r) || w.Header().Get("Content-Encoding") != "" {
			next.ServeHTTP(w, r)
			return
		}

		accept := r.Header.Get("Accept-Encoding")
		switch {
		case accepts(accept, "zstd"):
			zw := c.getZstd(w)
			cw := c.wrap(w, zw, "zstd")
			defer func() {
				if cw.disabled {
					// 204/304 不能帶 frame footer
					zw.Reset(io.Discard)
				}
				_ = zw.Close()
				c.zstd.Put(zw)
			}()
			next.ServeHTTP(cw, r)

		case accepts(accept, "gzip"):
			gw := c.getGzip(w)
			cw := c.wrap(w, gw, "gzip")
			defer func() {
				if cw.disabled {
					gw.Reset(io.Discard)
				}
				_ = gw.Close()
				c.gzip.Put(gw)
			}()
			next.ServeHTTP(cw, r)

		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (c *compressor) wrap(w http.ResponseWriter, enc io.Writer, name string) *compressWriter {
	w.Header().Set("Content-Encoding", name)
	w.Header().Add("Vary", "Accept-Encoding")
	return &compressWriter{ResponseWriter: w, w: enc}
}

func (c *compressor) getZstd(w io.Writer) *zstd.Encoder {
	if v := c.zstd.Get(); v != nil {
		zw := v.(*zstd.Encoder)
		zw.Reset(w)
		return zw
	}
	zw, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(c.cfg.ZstdLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		panic(err)
	}
	return zw
}

func (c *compressor) getGzip(w io.Writer) *gzip.Writer {
	if v := c.gzip.Get(); v != nil {
		gw := v.(*gzip.Writer)
		gw.Reset(w)
		return gw
	}
	gw, err := gzip.NewWriterLevel(w, c.cfg.GzipLevel)
	if err != nil {
		gw = gzip.NewWriter(w)
	}
	return gw
}

// compressWriter 把 body 導向壓縮器；遇到不帶 body 的狀態碼時改回直寫。
type compressWriter struct {
	http.ResponseWriter
	w        io.Writer
	disabled bool
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	cw.Header().Del("Content-Length")
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return cw.w.Write(b)
}

func (cw *compressWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if noBody(code) {
		cw.disabled = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Flush() {
	if !cw.disabled {
		if f, ok := cw.w.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

// Unwrap 給 http.ResponseController 使用
func (cw *compressWriter) Unwrap() http.ResponseWriter { return cw.ResponseWriter }

// accepts 解析 Accept-Encoding，q=0 視為拒絕。
func accepts(header, enc string) bool {
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), enc) {
			continue
		}
		for _, p := range strings.Split(params, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if ok && strings.EqualFold(k, "q") {
				if q, err := strconv.ParseFloat(v, 64); err == nil && q == 0 {
					return false
				}
			}
		}
		return true
	}
	return false
}

func isUpgrade(r *http.Request) bool {
	return r.Header.Get("Upgrade") != "" ||
		strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}

// noBody 1xx、204、304
func noBody(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}
