// Package uid конвертирует канонические UUID в компактное 16-байтовое
// представление для хранения и обратно. Байтовый вид не должен покидать
// слой репозиториев: домен и транспорт работают только с uuid.UUID.
package uid

import (
	"fmt"

	"github.com/google/uuid"
)

// Size — длина бинарного представления идентификатора.
const Size = 16

// Encode возвращает 16-байтовое представление идентификатора.
func Encode(id uuid.UUID) []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// Decode восстанавливает UUID из 16-байтового значения. Значение иной длины —
// признак повреждения данных в хранилище, а не штатная ошибка.
func Decode(b []byte) (uuid.UUID, error) {
	if len(b) != Size {
		return uuid.Nil, fmt.Errorf("corrupt identifier: expected %d bytes, got %d", Size, len(b))
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt identifier: %w", err)
	}
	return id, nil
}
