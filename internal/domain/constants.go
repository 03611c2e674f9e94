package domain

// DateFormat формат даты YYYY-MM-DD (wall-clock, без часового пояса)
const DateFormat = "2006-01-02"

// Пагинация
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Бизнес-ограничения
const (
	MaxNotesLength = 1000
	MaxSlotsPerDay = 96 // 15-минутные слоты на сутки
)

// LiveRequestStatuses статусы заявки, при которых запись удерживает слот
var LiveRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusAccepted,
}
