// Package events defines the change events the catalog publishes after successful writes.
package events

import (
	"encoding/json"
	"time"
)

// Action names the kind of change carried by an event.
type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

const (
	CategorySubjectPrefix = "catalog.category."
	ProductSubjectPrefix  = "catalog.product."

	// StreamSubjects is the subject filter of the JetStream stream capturing catalog events.
	StreamSubjects = "catalog.>"
)

type CategoryEvent struct {
	Action      Action    `json:"action"`
	CategoryID  int       `json:"categoryId"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func (e CategoryEvent) Subject() string {
	return CategorySubjectPrefix + string(e.Action)
}

func (e CategoryEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// ProductEvent carries the price as its exact decimal string.
type ProductEvent struct {
	Action     Action    `json:"action"`
	ProductID  int       `json:"productId"`
	CategoryID int       `json:"categoryId,omitempty"`
	Name       string    `json:"name,omitempty"`
	Price      string    `json:"price,omitempty"`
	Stock      int       `json:"stock"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e ProductEvent) Subject() string {
	return ProductSubjectPrefix + string(e.Action)
}

func (e ProductEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
