package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CaseStatus string

const (
	CaseAbierto       CaseStatus = "abierto"
	CaseEnProceso     CaseStatus = "en_proceso"
	CasePendienteDocs CaseStatus = "pendiente_docs"
	CaseCerrado       CaseStatus = "cerrado"
)

func (s CaseStatus) Valid() bool {
	switch s {
	case CaseAbierto, CaseEnProceso, CasePendienteDocs, CaseCerrado:
		return true
	}
	return false
}

// Caso is a legal case handled by the firm.
type Caso struct {
	ID          string     `json:"id"`
	CaseNumber  string     `json:"caseNumber"`
	Title       string     `json:"title"`
	ClientName  string     `json:"clientName"`
	ClientID    string     `json:"clientId,omitempty"`
	AssignedTo  string     `json:"assignedTo"`
	Description string     `json:"description"`
	Status      CaseStatus `json:"status"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (c *Caso) RecordID() string   { return c.ID }
func (c *Caso) IsArchived() bool   { return c.Archived }
func (c *Caso) Created() time.Time { return c.CreatedAt }
func (c *Caso) Kind() string       { return string(c.Status) }

func (c *Caso) SearchFields() []string {
	return []string{c.Title, c.CaseNumber, c.ClientName, c.AssignedTo}
}

// ClearTimestamps zeroes the server-owned timestamps so the store assigns them.
func (c *Caso) ClearTimestamps() {
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
}

func (c *Caso) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("el título del caso es obligatorio")
	}
	if strings.TrimSpace(c.ClientName) == "" {
		return errors.New("el nombre del cliente es obligatorio")
	}
	if !c.Status.Valid() {
		return errors.New("estado de caso inválido")
	}
	if c.ClientID != "" && !validClientID(c.ClientID) {
		return errors.New("identificador de cliente inválido")
	}
	return nil
}

type CasoPatch struct {
	CaseNumber  *string     `json:"caseNumber"`
	Title       *string     `json:"title"`
	ClientName  *string     `json:"clientName"`
	ClientID    *string     `json:"clientId"`
	AssignedTo  *string     `json:"assignedTo"`
	Description *string     `json:"description"`
	Status      *CaseStatus `json:"status"`
	Archived    *bool       `json:"archived"`
}

func (p CasoPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.New("el título del caso no puede quedar vacío")
	}
	if p.ClientName != nil && strings.TrimSpace(*p.ClientName) == "" {
		return errors.New("el nombre del cliente no puede quedar vacío")
	}
	if p.Status != nil && !p.Status.Valid() {
		return errors.New("estado de caso inválido")
	}
	if p.ClientID != nil && *p.ClientID != "" && !validClientID(*p.ClientID) {
		return errors.New("identificador de cliente inválido")
	}
	return nil
}

// validClientID matches the uuid column casos.client_id references.
func validClientID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
