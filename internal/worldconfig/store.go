package worldconfig

import "context"

//go:generate mockgen -destination=mock/mock_store.go -package=worldconfigmock github.com/annel0/mmo-dungeon/internal/worldconfig Store

// Store хранилище документов конфигурации, один документ на мир.
// Ошибки ввода-вывода возвращаются с кодом IO, повреждённые документы с кодом CONFIG_READ.
type Store interface {
	// Load читает документ. found=false, если документа нет.
	Load(ctx context.Context, name string) (doc Document, found bool, err error)

	// Save полностью заменяет документ.
	Save(ctx context.Context, name string, doc Document) error

	// Backup сохраняет копию текущего документа. Отсутствие документа не ошибка.
	Backup(ctx context.Context, name string) error

	// Exists проверяет наличие документа.
	Exists(ctx context.Context, name string) (bool, error)

	// Delete удаляет документ. Возвращает true, если документ существовал.
	Delete(ctx context.Context, name string) (bool, error)
}
