package domain

import "errors"

var (
	// Ошибка отсутствующего идентификатора реселлера.
	ErrResellerRequired = errors.New("reseller_id is required")
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующего идентификатора продукта в позиции.
	ErrItemProductRequired = errors.New("item product_id is required")
	// Ошибка при некорректном количестве в позиции (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")

	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order id does not exist")
	// ErrStatusNotFound возвращается, если статус не разрешается по имени
	// или фильтрация по статусу не даёт ни одного заказа.
	ErrStatusNotFound = errors.New("order status is not valid")
	// ErrProductNotFound возвращается при ссылке на несуществующий продукт.
	ErrProductNotFound = errors.New("product id is not valid")

	// ErrMonthOutOfRange — месяц вне диапазона 1..12.
	ErrMonthOutOfRange = errors.New("month must be between 1 and 12")
	// ErrYearOutOfRange — год вне диапазона 1..9999.
	ErrYearOutOfRange = errors.New("year must be between 1 and 9999")

	// ErrStatusCatalogMissing сигнализирует, что в каталоге нет обязательного
	// статуса ("Created"/"Completed"). Это дефект конфигурации развёртывания,
	// а не ошибка вызывающей стороны, поэтому он не классифицируется как NotFound.
	ErrStatusCatalogMissing = errors.New("required order status is missing from catalog")

	// ErrOrderNotPersisted возвращается, когда хранилище отчиталось нулём
	// записанных строк при создании заказа.
	ErrOrderNotPersisted = errors.New("order was not persisted")
)

// IsNotFound проверяет, относится ли ошибка к классу NotFound
// (отсутствующий заказ, статус или продукт).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrStatusNotFound) ||
		errors.Is(err, ErrProductNotFound)
}

// IsOutOfRange проверяет, относится ли ошибка к классу OutOfRange
// (месяц/год вне допустимых границ).
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrMonthOutOfRange) || errors.Is(err, ErrYearOutOfRange)
}

// IsConfigViolation проверяет, вызвана ли ошибка нарушением конфигурационного
// инварианта каталога статусов.
func IsConfigViolation(err error) bool {
	return errors.Is(err, ErrStatusCatalogMissing)
}
