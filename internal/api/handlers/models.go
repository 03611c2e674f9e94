package handlers

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// AppointmentResponse HTTP модель записи
type AppointmentResponse struct {
	ID                int64   `json:"id"`
	DoctorID          int64   `json:"doctor_id"`
	PatientID         int64   `json:"patient_id"`
	AvailabilityID    *int64  `json:"availability_id"`
	AppointmentDate   string  `json:"appointment_date"` // "2025-10-15"
	StartTime         string  `json:"start_time"`       // "10:00"
	EndTime           string  `json:"end_time"`
	RequestStatus     string  `json:"request_status"`
	AppointmentStatus *string `json:"appointment_status"` // null пока запись не назначена
	State             string  `json:"state"`
	Notes             *string `json:"notes"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`

	// Только в списках
	Doctor       *DoctorSummaryResponse `json:"doctor,omitempty"`
	Patient      *PatientResponse       `json:"patient,omitempty"`
	Availability *SlotResponse          `json:"availability,omitempty"`
}

// DoctorSummaryResponse врач в составе записи, без слотов
type DoctorSummaryResponse struct {
	UserID         int64  `json:"user_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Specialization string `json:"specialization"`
	ClinicName     string `json:"clinic_name"`
	ClinicCity     string `json:"clinic_city"`
}

// PatientResponse пациент в составе заявки
type PatientResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	DoctorID  int64  `json:"doctor_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBooked  bool   `json:"is_booked"`
}

// DoctorResponse HTTP модель врача со свободными слотами
type DoctorResponse struct {
	UserID           int64           `json:"user_id"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	Specialization   string          `json:"specialization"`
	ClinicName       string          `json:"clinic_name"`
	ClinicCity       string          `json:"clinic_city"`
	ConsultationFees float64         `json:"consultation_fees"`
	Availabilities   []*SlotResponse `json:"availabilities"`
}

// FromAppointment конвертирует доменную запись в HTTP модель
func FromAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:              a.ID,
		DoctorID:        a.DoctorID,
		PatientID:       a.PatientID,
		AvailabilityID:  a.AvailabilityID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		EndTime:         a.EndTime.String(),
		RequestStatus:   string(a.RequestStatus),
		State:           string(a.Lifecycle()),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
	if a.AppointmentStatus != domain.AppointmentStatusNone {
		status := string(a.AppointmentStatus)
		resp.AppointmentStatus = &status
	}
	if a.Doctor != nil {
		resp.Doctor = &DoctorSummaryResponse{
			UserID:         a.Doctor.UserID,
			FirstName:      a.Doctor.FirstName,
			LastName:       a.Doctor.LastName,
			Specialization: a.Doctor.Specialization,
			ClinicName:     a.Doctor.ClinicName,
			ClinicCity:     a.Doctor.ClinicCity,
		}
	}
	if a.Patient != nil {
		resp.Patient = &PatientResponse{ID: a.Patient.ID, Email: a.Patient.Email}
	}
	if a.Availability != nil {
		resp.Availability = FromSlot(a.Availability)
	}
	return resp
}

// FromSlot конвертирует слот в HTTP модель
func FromSlot(s *domain.AvailabilitySlot) *SlotResponse {
	return &SlotResponse{
		ID:        s.ID,
		DoctorID:  s.DoctorID,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		IsBooked:  s.IsBooked,
	}
}

// FromSlots конвертирует список слотов, пустой список сериализуется как []
func FromSlots(slots []*domain.AvailabilitySlot) []*SlotResponse {
	result := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromSlot(s))
	}
	return result
}

// FromDoctor конвертирует врача вместе с подгруженными слотами
func FromDoctor(d *domain.Doctor) *DoctorResponse {
	return &DoctorResponse{
		UserID:           d.UserID,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Specialization:   d.Specialization,
		ClinicName:       d.ClinicName,
		ClinicCity:       d.ClinicCity,
		ConsultationFees: d.ConsultationFees,
		Availabilities:   FromSlots(d.Availabilities),
	}
}

// FromDoctors конвертирует список врачей
func FromDoctors(doctors []*domain.Doctor) []*DoctorResponse {
	result := make([]*DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		result = append(result, FromDoctor(d))
	}
	return result
}
