package worldconfig

import (
	"encoding/json"
	"strings"

	"github.com/annel0/mmo-dungeon/internal/errors"
)

const (
	// CurrentVersion текущая версия схемы документа
	CurrentVersion = 2
	// MinimumVersion минимальная версия, которую ещё можно мигрировать
	MinimumVersion = 1
)

// Document сохранённая конфигурация мира
type Document struct {
	Version    int      `yaml:"Version" json:"Version"`
	Populators []string `yaml:"Populators" json:"Populators"`
}

// RawDocument документ в том виде, как он прочитан: элементы списка не проверены
type RawDocument struct {
	Version    int           `yaml:"Version" json:"Version"`
	Populators []interface{} `yaml:"Populators" json:"Populators"`
}

// Decode проверяет, что каждый элемент списка является строкой
func (raw RawDocument) Decode(name string) (Document, error) {
	doc := Document{
		Version:    raw.Version,
		Populators: make([]string, 0, len(raw.Populators)),
	}
	for i, entry := range raw.Populators {
		s, ok := entry.(string)
		if !ok {
			return Document{}, errors.ConfigReadf("config %s: Populators[%d] is %T, expected string", name, i, entry).
				WithMeta("world", name)
		}
		doc.Populators = append(doc.Populators, s)
	}
	return doc, nil
}

// MarshalJSON кодирует документ для key-value хранилищ
func MarshalJSON(doc Document) ([]byte, error) {
	if doc.Populators == nil {
		doc.Populators = []string{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "encode config document")
	}
	return data, nil
}

// UnmarshalJSON декодирует документ, прочитанный из key-value хранилища
func UnmarshalJSON(name string, data []byte) (Document, error) {
	var raw RawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, errors.WrapWithCodef(err, errors.CodeConfigRead, "parse config %s", name)
	}
	return raw.Decode(name)
}

// ValidateName запрещает пустые имена и имена с разделителями путей
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.InvalidArgumentf("invalid world name %q", name)
	}
	return nil
}
