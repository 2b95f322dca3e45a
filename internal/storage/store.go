package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store — долговременное хранилище пар ключ-значение на файловой системе.
// Каждый ключ лежит в отдельном файле внутри каталога-пространства имён;
// запись атомарна (временный файл + rename). Аналог localStorage браузера
// для консольного клиента.
type Store struct {
	rootPath string
}

// NewStore создаёт хранилище в указанном каталоге.
func NewStore(rootPath string) (*Store, error) {
	if err := os.MkdirAll(rootPath, 0o700); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	return &Store{rootPath: rootPath}, nil
}

// Set записывает значение по ключу, перезаписывая прежнее без слияния.
func (s *Store) Set(key, value string) error {
	targetPath, err := s.pathFor(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.rootPath, 0o700); err != nil {
		return fmt.Errorf("storage: не удалось создать каталог %s: %w", s.rootPath, err)
	}

	tempPath := targetPath + ".tmp"
	if err := os.WriteFile(tempPath, []byte(value), 0o600); err != nil {
		return fmt.Errorf("storage: ошибка записи ключа %s: %w", key, err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("storage: не удалось сохранить ключ %s: %w", key, err)
	}
	return nil
}

// Get возвращает значение по ключу. Отсутствие ключа не является ошибкой:
// второй результат равен false.
func (s *Store) Get(key string) (string, bool, error) {
	targetPath, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("storage: ошибка чтения ключа %s: %w", key, err)
	}
	return string(data), true, nil
}

// Delete удаляет один ключ; отсутствующий ключ не считается ошибкой.
func (s *Store) Delete(key string) error {
	targetPath, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(targetPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить ключ %s: %w", key, err)
	}
	return nil
}

// Clear полностью очищает пространство имён хранилища, включая ключи,
// записанные другими версиями клиента.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.rootPath); err != nil {
		return fmt.Errorf("storage: не удалось очистить хранилище: %w", err)
	}
	if err := os.MkdirAll(s.rootPath, 0o700); err != nil {
		return fmt.Errorf("storage: не удалось пересоздать каталог %s: %w", s.rootPath, err)
	}
	return nil
}

// Keys возвращает отсортированный список существующих ключей.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: ошибка чтения каталога: %w", err)
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		keys = append(keys, e.Name())
	}
	sort.Strings(keys)
	return keys, nil
}

// pathFor строит путь файла ключа, отклоняя ключи с разделителями пути.
func (s *Store) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("storage: недопустимый ключ %q", key)
	}
	return filepath.Join(s.rootPath, key), nil
}
