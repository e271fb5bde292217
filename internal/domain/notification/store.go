package notification

import "sync"

// Store guarda as notificações de cada usuário
type Store interface {
	// Add insere a notificação no topo da lista do usuário
	Add(userID string, n *Notification)

	// List retorna as notificações do usuário, mais recentes primeiro
	List(userID string) []Notification

	// UnreadCount conta as notificações não lidas
	UnreadCount(userID string) int

	// MarkAsRead marca uma notificação como lida
	MarkAsRead(userID, id string) error

	// MarkAllAsRead marca todas as notificações do usuário como lidas
	MarkAllAsRead(userID string)

	// Clear remove todas as notificações do usuário
	Clear(userID string)

	// Reset esvazia o store inteiro
	Reset()
}

// MemoryStore mantém as notificações em memória, limitadas por usuário
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	items    map[string][]Notification
}

// NewMemoryStore cria um store com capacidade por usuário; valores não positivos usam MaxPerUser
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = MaxPerUser
	}
	return &MemoryStore{
		capacity: capacity,
		items:    make(map[string][]Notification),
	}
}

func (s *MemoryStore) Add(userID string, n *Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append([]Notification{*n}, s.items[userID]...)
	if len(list) > s.capacity {
		list = list[:s.capacity]
	}
	s.items[userID] = list
}

func (s *MemoryStore) List(userID string) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.items[userID]
	out := make([]Notification, len(list))
	copy(out, list)
	return out
}

func (s *MemoryStore) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.items[userID] {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *MemoryStore) MarkAsRead(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.items[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (s *MemoryStore) MarkAllAsRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items[userID] {
		s.items[userID][i].Read = true
	}
}

func (s *MemoryStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
}

func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string][]Notification)
}
