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

import "sync/atomic"

const mask63 = (uint64(1) << 63) - 1

// SeedMaker 由一個 base seed 派生出不重複的子 seed。
// 牌桌替每個 session 的牌靴派生一個子 seed；模擬器替每個 worker 派生一個。
type SeedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func NewSeedMaker(seed int64) *SeedMaker {
	s := &SeedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// Next : state 走全週期（不重複），再用可逆 mix63 打散
//
// 可能被多個 goroutine 同時呼叫，state 以 CAS 迴圈推進，每次呼叫取得唯一的下一個 state。
func (s *SeedMaker) Next() int64 {
	for {
		old := s.state.Load()                                            // always masked
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63 // 乘奇數 ⇒ mod 2^63 可逆
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
