// Package registry cung cấp implementation của registry pattern với generic type.
// Package này cho phép quản lý các singleton instances trong ứng dụng một cách thread-safe.
// Sử dụng generic type để có thể tái sử dụng cho nhiều loại đối tượng khác nhau.
package registry

import (
	"fmt"
	"sync"
)

// Registry là một thread-safe generic registry pattern implementation.
// Type parameter T cho phép registry quản lý bất kỳ loại object nào.
// Thread-safety được đảm bảo thông qua sync.RWMutex.
type Registry[T any] struct {
	items map[string]T // Map lưu trữ các items theo key
	mu    sync.RWMutex // Mutex để đảm bảo thread-safety
}

// NewRegistry tạo và trả về một registry mới.
// Generic type T xác định loại items mà registry sẽ quản lý.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item vào registry theo name.
// Trả về isNew = false nếu name đã tồn tại (item cũ được giữ nguyên).
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("registry: name không được rỗng")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[name]; exists {
		return false, nil
	}
	r.items[name] = item
	return true, nil
}

// Get lấy item theo name. exists = false nếu chưa đăng ký.
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// GetOrCreate lấy item theo name, nếu chưa có thì gọi creator để tạo và đăng ký.
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (item T, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, exists := r.items[name]; exists {
		return existing, nil
	}
	created, err := creator()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("registry: tạo item %s thất bại: %w", name, err)
	}
	r.items[name] = created
	return created, nil
}

// Clear xóa item theo name, gọi cleanup (nếu có) trước khi xóa.
func (r *Registry[T]) Clear(name string, cleanup func(T) error) (deleted bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, exists := r.items[name]
	if !exists {
		return false, nil
	}
	if cleanup != nil {
		if err := cleanup(item); err != nil {
			return false, fmt.Errorf("registry: cleanup item %s thất bại: %w", name, err)
		}
	}
	delete(r.items, name)
	return true, nil
}

// ClearAll xóa toàn bộ items, gọi cleanup cho từng item (nếu có).
func (r *Registry[T]) ClearAll(cleanup func(T) error) (count int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, item := range r.items {
		if cleanup != nil {
			if err := cleanup(item); err != nil {
				return count, fmt.Errorf("registry: cleanup item %s thất bại: %w", name, err)
			}
		}
		delete(r.items, name)
		count++
	}
	return count, nil
}
