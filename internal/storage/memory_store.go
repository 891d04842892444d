package storage

import (
	"context"
	"sync"

	"github.com/annel0/mmo-dungeon/internal/worldconfig"
)

// MemoryStore хранит документы конфигурации в памяти.
// Используется в тестах и для запусков без каталога данных.
// ВНИМАНИЕ: данные теряются при перезапуске!
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[string]worldconfig.Document
	backups map[string][]worldconfig.Document
}

// NewMemoryStore создаёт пустое хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:    make(map[string]worldconfig.Document),
		backups: make(map[string][]worldconfig.Document),
	}
}

func cloneDocument(doc worldconfig.Document) worldconfig.Document {
	out := worldconfig.Document{Version: doc.Version, Populators: make([]string, len(doc.Populators))}
	copy(out.Populators, doc.Populators)
	return out
}

// Load загружает документ из памяти
func (s *MemoryStore) Load(ctx context.Context, name string) (worldconfig.Document, bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return worldconfig.Document{}, false, err
	}
	if err := ctx.Err(); err != nil {
		return worldconfig.Document{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[name]
	if !ok {
		return worldconfig.Document{}, false, nil
	}
	return cloneDocument(doc), true, nil
}

// Save сохраняет копию документа
func (s *MemoryStore) Save(ctx context.Context, name string, doc worldconfig.Document) error {
	if err := worldconfig.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = cloneDocument(doc)
	return nil
}

// Backup запоминает текущую версию документа
func (s *MemoryStore) Backup(ctx context.Context, name string) error {
	if err := worldconfig.ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.data[name]
	if !ok {
		return nil
	}
	s.backups[name] = append(s.backups[name], cloneDocument(doc))
	return nil
}

// Backups возвращает сохранённые резервные копии мира
func (s *MemoryStore) Backups(name string) []worldconfig.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]worldconfig.Document, 0, len(s.backups[name]))
	for _, doc := range s.backups[name] {
		out = append(out, cloneDocument(doc))
	}
	return out
}

// Exists проверяет наличие документа
func (s *MemoryStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[name]
	return ok, nil
}

// Delete удаляет документ
func (s *MemoryStore) Delete(ctx context.Context, name string) (bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.data[name]
	delete(s.data, name)
	return ok, nil
}

var _ worldconfig.Store = (*MemoryStore)(nil)
