package vacancy

import (
	"sync"
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
)

// Cache кэш разобранных листов по бизнесу
// Лист перечитывается из текста только после обновления: запись считается
// актуальной, пока updatedAt сохранённого текста совпадает с закэшированным.
// Обновление листа инвалидирует запись (контракт инвалидации, не блокировки).
type Cache struct {
	mu      sync.RWMutex
	entries map[int64]cacheEntry
}

type cacheEntry struct {
	sheet     *domain.VacancySheet
	updatedAt time.Time
}

// NewCache создает пустой кэш листов
func NewCache() *Cache {
	return &Cache{entries: make(map[int64]cacheEntry)}
}

// Get возвращает разобранный лист, если кэш актуален для данного updatedAt
func (c *Cache) Get(businessID int64, updatedAt time.Time) (*domain.VacancySheet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[businessID]
	if !ok || !entry.updatedAt.Equal(updatedAt) {
		return nil, false
	}
	return entry.sheet, true
}

// Put сохраняет разобранный лист в кэш
func (c *Cache) Put(businessID int64, sheet *domain.VacancySheet, updatedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[businessID] = cacheEntry{sheet: sheet, updatedAt: updatedAt}
}

// Invalidate удаляет запись кэша для бизнеса
func (c *Cache) Invalidate(businessID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, businessID)
}
