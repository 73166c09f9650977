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

package core

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

type PRNGFactory interface {
	// New 以指定 seed 建立新的 PRNG。
	//
	// 合約：相同 seed 必須產生相同的輸出序列。
	// 牌桌與模擬器都只用帶 seed 的 New，測試才能重現每一張牌。
	New(int64) PRNG
}

// DefaultPRNG 實作預設的 PRNGFactory
type DefaultPRNG struct{}

// New 滿足合約
func (d *DefaultPRNG) New(seed int64) PRNG {
	return NewPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 封裝 PRNG，並提供洗牌等常用工具方法。
// Core 本身不是併發安全的；牌桌在單一玩家鎖內使用。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// Shuffle 使用 Fisher-Yates (Knuth Shuffle) 對長度 n 的序列做就地重排，
// 交換動作交給 swap，讓任何切片型別都能共用。
//
// 所有 N! 種排列出現機率嚴格相等；時間 O(N)，不配置記憶體。
func (c *Core) Shuffle(n int, swap func(i, j int)) {
	if n <= 1 {
		return
	}
	for i := n - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		swap(i, j)
	}
}

// Seed 從目前的亂數流派生一個新的 int64 種子（非負）。
func (c *Core) Seed() int64 {
	return int64(c.Uint64() >> 1)
}
