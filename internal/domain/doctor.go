package domain

import "time"

// Doctor профиль врача из справочника
type Doctor struct {
	UserID           int64
	FirstName        string
	LastName         string
	Specialization   string
	ClinicName       string
	ClinicCity       string
	ConsultationFees float64
	CreatedAt        time.Time

	// Свободные слоты, подгружаются запросами доступности
	Availabilities []*AvailabilitySlot
}

// FullName имя и фамилия врача
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// AvailableDoctorsFilter фильтр поиска врачей со свободными слотами
type AvailableDoctorsFilter struct {
	Specialization *string
	City           *string
	FromDate       time.Time  // слоты с этой даты включительно
	OnDate         *time.Time // если задано - только слоты на эту дату, врачи без слотов исключаются
}
