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

package game

import (
	"sync"

	"github.com/zintix-labs/vegas21/errs"
)

// SessionStore 玩家 → 進行中牌局的對照表，也是 session 唯一的寫入者。
//
// 兩層鎖：
//   - mu 保護 map 本身，持有時間極短。
//   - 每位玩家一把 keyed lock，整個動作（抽牌、計分、轉換狀態、帳本呼叫）都在這把鎖內完成，
//     同一玩家的動作因此序列化，不同玩家彼此完全並行。
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	locks    keyedMutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session, 64),
		locks:    keyedMutex{m: make(map[string]*refLock, 64)},
	}
}

// Lock 取得玩家的動作鎖，回傳解鎖函數。
func (s *SessionStore) Lock(player string) (unlock func()) {
	return s.locks.lock(player)
}

// Get 取得進行中的牌局；沒有則回傳 NoActiveHand。
func (s *SessionStore) Get(player string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[player]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewWithExtra(errs.NoActiveHand, "no active hand", player)
	}
	return sess, nil
}

func (s *SessionStore) Has(player string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[player]
	return ok
}

// Create 新增牌局；玩家已有進行中的牌局時回傳 SessionAlreadyActive。
func (s *SessionStore) Create(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.Player]; ok {
		return errs.NewWithExtra(errs.SessionAlreadyActive, "hand already in progress", sess.Player)
	}
	s.sessions[sess.Player] = sess
	return nil
}

// put 以動作完成後的複本覆蓋原 session。
func (s *SessionStore) put(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.Player] = sess
	s.mu.Unlock()
}

// Delete 由結算流程呼叫，每手牌恰好一次。
func (s *SessionStore) Delete(player string) {
	s.mu.Lock()
	delete(s.sessions, player)
	s.mu.Unlock()
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// keyedMutex 每個 key 一把鎖，沒有人等待時即釋放，map 不會無限成長。
type keyedMutex struct {
	mu sync.Mutex
	m  map[string]*refLock
}

type refLock struct {
	sync.Mutex
	ref int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.m[key]
	if !ok {
		l = &refLock{}
		k.m[key] = l
	}
	l.ref++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.ref--
		if l.ref == 0 {
			delete(k.m, key)
		}
		k.mu.Unlock()
	}
}
