package pipeline

import "sync"

// MemoryEntry is one turn of the conversation.
type MemoryEntry struct {
	Role    string
	Content string
}

const (
	roleUser      = "User"
	roleAssistant = "Assistant"
)

// Memory is an append-only conversation log kept for the process lifetime.
type Memory struct {
	mu      sync.RWMutex
	entries []MemoryEntry
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) AddUser(content string) {
	m.add(roleUser, content)
}

func (m *Memory) AddAssistant(content string) {
	m.add(roleAssistant, content)
}

func (m *Memory) add(role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, MemoryEntry{Role: role, Content: content})
}

// Last returns the most recent n entries, oldest first.
func (m *Memory) Last(n int) []MemoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 || len(m.entries) == 0 {
		return nil
	}
	if n > len(m.entries) {
		n = len(m.entries)
	}
	out := make([]MemoryEntry, n)
	copy(out, m.entries[len(m.entries)-n:])
	return out
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
