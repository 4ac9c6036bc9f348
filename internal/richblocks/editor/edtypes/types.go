// Package edtypes описывает модель блочного документа: элементы, текстовые листья,
// метки, пути и позиции курсора. Все значения неизменяемы после публикации в документе,
// изменения производятся только через операции пакета editor.
//
// Основные возможности:
//   - Закрытый набор типов блоков (tagged variants) с типизированными атрибутами.
//   - Общий слой типографики только у текстовых блоков.
//   - Хранение документа в JSON/JSONB колонках через зарегистрированный парсер.
package edtypes

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
)

// BlocksParser - функция для парсинга JSON массива блоков, устанавливается из blocksjson пакета
var BlocksParser func(io.Reader) (*Document, error)

// BlocksSerializer - функция для сериализации Document в JSON массив блоков, устанавливается из blocksjson пакета
var BlocksSerializer func(*Document) ([]byte, error)

// Document is the editor root: an ordered list of top-level blocks.
type Document struct {
	Children []Node
}

// NewDocument returns a document holding the given blocks.
func NewDocument(children ...Node) *Document {
	return &Document{Children: children}
}

// EmptyDocument is the fallback document: a single empty paragraph.
func EmptyDocument() *Document {
	return NewDocument(NewParagraph())
}

// UnmarshalJSON реализует десериализацию JSON массива блоков в Document.
// Автоматически вызывает зарегистрированный BlocksParser.
func (d *Document) UnmarshalJSON(data []byte) error {
	if BlocksParser == nil {
		return errors.New("BlocksParser not registered, import blocksjson package to enable blocks JSON parsing")
	}

	doc, err := BlocksParser(bytes.NewReader(data))
	if err != nil {
		return err
	}

	d.Children = doc.Children
	return nil
}

// MarshalJSON реализует сериализацию Document в JSON массив блоков.
func (d *Document) MarshalJSON() ([]byte, error) {
	if BlocksSerializer == nil {
		return nil, errors.New("BlocksSerializer not registered, import blocksjson package to enable blocks JSON serialization")
	}

	return BlocksSerializer(d)
}

// Value реализует интерфейс driver.Valuer для сохранения Document в JSONB.
func (d Document) Value() (driver.Value, error) {
	b, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan реализует интерфейс sql.Scanner для чтения Document из JSONB.
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = *EmptyDocument()
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	return d.UnmarshalJSON(bytes)
}

// GormDataType указывает GORM использовать тип JSONB для колонок.
func (Document) GormDataType() string {
	return "jsonb"
}
