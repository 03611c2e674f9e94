package notifier

import "errors"

var (
	// ErrEncode возвращается, когда событие не удалось сериализовать
	ErrEncode = errors.New("notifier: failed to encode notification")

	// ErrRecipientNotFound возвращается, когда не удалось определить адрес получателя
	ErrRecipientNotFound = errors.New("notifier: recipient not found")

	// ErrDeliver возвращается, когда канал доставки вернул ошибку
	ErrDeliver = errors.New("notifier: delivery failed")

	// ErrUnexpectedStatus возвращается, когда webhook ответил не 2xx
	ErrUnexpectedStatus = errors.New("notifier: unexpected webhook response")
)
