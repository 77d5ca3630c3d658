package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Subjects(t *testing.T) {
	testCases := []struct {
		name     string
		subject  string
		expected string
	}{
		{"category created", CategoryEvent{Action: Created}.Subject(), "catalog.category.created"},
		{"category deleted", CategoryEvent{Action: Deleted}.Subject(), "catalog.category.deleted"},
		{"product updated", ProductEvent{Action: Updated}.Subject(), "catalog.product.updated"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.subject)
		})
	}
}

func Test_ProductEvent_Payload(t *testing.T) {
	// given
	event := ProductEvent{
		Action:     Created,
		ProductID:  7,
		CategoryID: 2,
		Name:       "Lamp",
		Price:      "19.99",
		Stock:      4,
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	// when
	payload, err := event.Payload()

	// then
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"action": "created",
		"productId": 7,
		"categoryId": 2,
		"name": "Lamp",
		"price": "19.99",
		"stock": 4,
		"occurredAt": "2025-01-02T03:04:05Z"
	}`, string(payload))
}
