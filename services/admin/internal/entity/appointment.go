package entity

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentPendiente  AppointmentStatus = "pendiente"
	AppointmentConfirmada AppointmentStatus = "confirmada"
	AppointmentCancelada  AppointmentStatus = "cancelada"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPendiente, AppointmentConfirmada, AppointmentCancelada:
		return true
	}
	return false
}

// Appointment is a request submitted from the public site.
type Appointment struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Service       string            `json:"service"`
	PreferredDate *time.Time        `json:"preferredDate,omitempty"`
	Message       string            `json:"message"`
	Status        AppointmentStatus `json:"status"`
	Archived      bool              `json:"archived"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (a *Appointment) RecordID() string       { return a.ID }
func (a *Appointment) IsArchived() bool       { return a.Archived }
func (a *Appointment) Created() time.Time     { return a.CreatedAt }
func (a *Appointment) Kind() string           { return string(a.Status) }
func (a *Appointment) SearchFields() []string { return []string{a.Name, a.Email, a.Service} }

// ClearTimestamps zeroes the server-owned timestamps so the store assigns them.
func (a *Appointment) ClearTimestamps() {
	a.CreatedAt = time.Time{}
	a.UpdatedAt = time.Time{}
}

func (a *Appointment) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("el nombre es obligatorio")
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return errors.New("correo electrónico inválido")
	}
	if strings.TrimSpace(a.Service) == "" {
		return errors.New("el servicio es obligatorio")
	}
	if !a.Status.Valid() {
		return errors.New("estado de cita inválido")
	}
	return nil
}

type AppointmentPatch struct {
	Status        *AppointmentStatus `json:"status"`
	PreferredDate *time.Time         `json:"preferredDate"`
	Phone         *string            `json:"phone"`
	Message       *string            `json:"message"`
	Archived      *bool              `json:"archived"`
}

func (p AppointmentPatch) Validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return errors.New("estado de cita inválido")
	}
	return nil
}
