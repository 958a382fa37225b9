package events

import "errors"

var (
	// ErrInvalidConfig возвращается при неполной конфигурации консьюмера
	ErrInvalidConfig = errors.New("events: invalid consumer config")

	// ErrPoisonMessage возвращается для сообщения, которое нельзя обработать никогда
	ErrPoisonMessage = errors.New("events: poison message")
)
