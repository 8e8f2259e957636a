package wishlist

import (
	"os"
	"sync"
)

// FilePersistence stores the wishlist as a small JSON file, the desktop
// analog of browser local storage. Writes happen synchronously on every
// mutation; the set is small enough that write amplification does not matter.
type FilePersistence struct {
	path string
}

func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

func (f *FilePersistence) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (f *FilePersistence) Save(data []byte) error {
	return os.WriteFile(f.path, data, 0o644)
}

// MemoryPersistence is used in tests.
type MemoryPersistence struct {
	mu   sync.Mutex
	data []byte
}

func (m *MemoryPersistence) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *MemoryPersistence) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

// Bytes returns the last saved payload.
func (m *MemoryPersistence) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
