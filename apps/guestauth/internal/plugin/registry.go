// Package plugin は設定値から実装を選択する名前付きレジストリを提供する。
package plugin

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// Constructor は実装を生成する関数。
type Constructor[T any] func() (T, error)

// Registry は名前（大文字小文字を区別しない）とConstructorの対応を管理する。
// 未登録の名前や生成失敗時はデフォルト実装にフォールバックする。
type Registry[T any] struct {
	kind        string
	ctors       map[string]Constructor[T]
	defaultName string
}

// NewRegistry はデフォルト実装を登録したRegistryを生成する。
// kindはログ出力用の種別名（"auth_handler"、"chat"等）。
func NewRegistry[T any](kind, defaultName string, defaultCtor Constructor[T]) *Registry[T] {
	r := &Registry[T]{
		kind:        kind,
		ctors:       make(map[string]Constructor[T]),
		defaultName: strings.ToLower(defaultName),
	}
	r.ctors[r.defaultName] = defaultCtor
	return r
}

// Register は実装を登録する。同名の登録は上書きする。
func (r *Registry[T]) Register(name string, ctor Constructor[T]) {
	r.ctors[strings.ToLower(name)] = ctor
}

// Get は指定名のConstructorを返す。未登録の場合はPluginErrorを返す。
func (r *Registry[T]) Get(name string) (Constructor[T], error) {
	ctor, ok := r.ctors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, apperr.NewPluginError(r.kind, name, apperr.ErrPluginNotFound)
	}
	return ctor, nil
}

// Resolve は指定名のConstructorを返す。未登録・空の場合は警告を出してデフォルトを返す。
func (r *Registry[T]) Resolve(name string) (string, Constructor[T]) {
	ctor, err := r.Get(name)
	if err != nil {
		slog.Warn("unknown plugin, using default",
			logging.WithEventID("PLUGIN_FALLBACK"),
			slog.String("kind", r.kind),
			slog.String("name", name),
			slog.String("default", r.defaultName),
		)
		return r.defaultName, r.ctors[r.defaultName]
	}
	return strings.ToLower(strings.TrimSpace(name)), ctor
}

// New は指定名の実装を生成する。生成に失敗した場合もデフォルトを生成する。
// デフォルトの生成も失敗した場合のみエラーを返す。
func (r *Registry[T]) New(name string) (string, T, error) {
	resolved, ctor := r.Resolve(name)
	impl, err := ctor()
	if err == nil {
		return resolved, impl, nil
	}

	slog.Warn("plugin initialization failed, using default",
		logging.WithEventID("PLUGIN_INIT_ERR"),
		slog.String("kind", r.kind),
		slog.String("name", resolved),
		logging.WithError(err),
	)
	if resolved == r.defaultName {
		var zero T
		return "", zero, fmt.Errorf("%w: %w", apperr.ErrPluginInit, apperr.NewPluginError(r.kind, resolved, err))
	}
	return r.Default()
}

// Default はデフォルト実装を生成する。
func (r *Registry[T]) Default() (string, T, error) {
	impl, err := r.ctors[r.defaultName]()
	if err != nil {
		var zero T
		return "", zero, fmt.Errorf("%w: %w", apperr.ErrPluginInit, apperr.NewPluginError(r.kind, r.defaultName, err))
	}
	return r.defaultName, impl, nil
}

// Names は登録済みの名前をソートして返す。
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
