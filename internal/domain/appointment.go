package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// RequestStatus ось одобрения врачом
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// AppointmentStatus ось проведения приема, независимая от RequestStatus
// Пустое значение - запись еще не назначена (NULL в БД)
type AppointmentStatus string

const (
	AppointmentStatusNone      AppointmentStatus = ""
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// LifecycleState производное состояние записи для отображения
type LifecycleState string

const (
	StateRequested LifecycleState = "requested"
	StateScheduled LifecycleState = "scheduled"
	StateRejected  LifecycleState = "rejected"
	StateCancelled LifecycleState = "cancelled"
)

// Appointment заявка пациента на слот врача
// Дата и время копируются из слота при создании, при принятии время может быть переопределено врачом
type Appointment struct {
	ID                int64
	DoctorID          int64
	PatientID         int64
	AvailabilityID    *int64
	AppointmentDate   time.Time
	StartTime         types.TimeString
	EndTime           types.TimeString
	RequestStatus     RequestStatus
	AppointmentStatus AppointmentStatus
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time

	// Связанные записи, заполняются только в списках
	Doctor       *Doctor
	Patient      *User
	Availability *AvailabilitySlot
}

// IsPending заявка ожидает решения врача
func (a *Appointment) IsPending() bool {
	return a.RequestStatus == RequestStatusPending
}

// IsCancelled запись отменена одной из сторон
func (a *Appointment) IsCancelled() bool {
	return a.AppointmentStatus == AppointmentStatusCancelled
}

// IsLive запись удерживает слот: pending или accepted и не отменена
func (a *Appointment) IsLive() bool {
	if a.IsCancelled() {
		return false
	}
	return a.RequestStatus == RequestStatusPending || a.RequestStatus == RequestStatusAccepted
}

// HoldsSlot запись живая и ссылается на слот
func (a *Appointment) HoldsSlot() bool {
	return a.AvailabilityID != nil && a.IsLive()
}

// CanBeCancelled отменить можно все, что еще не отменено
func (a *Appointment) CanBeCancelled() bool {
	return !a.IsCancelled()
}

// Lifecycle сводит две оси статусов в одно состояние
// accepted+cancelled и pending+cancelled оба дают cancelled, исходная ось сохраняется в RequestStatus
func (a *Appointment) Lifecycle() LifecycleState {
	switch {
	case a.IsCancelled():
		return StateCancelled
	case a.RequestStatus == RequestStatusRejected:
		return StateRejected
	case a.RequestStatus == RequestStatusAccepted:
		return StateScheduled
	default:
		return StateRequested
	}
}

// Accept переводит заявку в accepted/scheduled с временем, выбранным врачом
func (a *Appointment) Accept(start, end types.TimeString) {
	a.RequestStatus = RequestStatusAccepted
	a.AppointmentStatus = AppointmentStatusScheduled
	a.StartTime = start
	a.EndTime = end
}

// Reject переводит заявку в rejected
func (a *Appointment) Reject() {
	a.RequestStatus = RequestStatusRejected
}

// Cancel отмечает запись отмененной, RequestStatus не меняется
func (a *Appointment) Cancel() {
	a.AppointmentStatus = AppointmentStatusCancelled
}

// ManageAction решение врача по заявке
type ManageAction string

const (
	ActionAccept ManageAction = "accept"
	ActionReject ManageAction = "reject"
)

// IsValid проверяет, что действие известно
func (a ManageAction) IsValid() bool {
	return a == ActionAccept || a == ActionReject
}
