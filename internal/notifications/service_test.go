package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenfolio/studio-portal/studio-portal-backend/internal/contracts"
)

func TestRenderFillsContractFields(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := &contracts.Contract{
		ID:                    uuid.New(),
		ClientName:            "Ada Moreno",
		Title:                 "Moreno Wedding",
		Status:                contracts.StatusInProgress,
		DeliveryWindowDays:    60,
		EstimatedDeliveryDate: &due,
	}

	subject, err := render("Your photos for {{.Title}} are in production", templateData(c))
	require.NoError(t, err)
	assert.Equal(t, "Your photos for Moreno Wedding are in production", subject)

	body, err := render("Hi {{.ClientName}}, delivery is estimated for {{.EstimatedDeliveryDate}} ({{.StatusLabel}}).", templateData(c))
	require.NoError(t, err)
	assert.Equal(t, "Hi Ada Moreno, delivery is estimated for March 1, 2024 (In Progress).", body)
}

func TestRenderWithoutDeliveryDate(t *testing.T) {
	c := &contracts.Contract{
		ClientName: "Ada Moreno",
		Title:      "Moreno Wedding",
		Status:     contracts.StatusDraft,
	}

	data := templateData(c)
	_, hasDate := data["EstimatedDeliveryDate"]
	assert.False(t, hasDate)

	out, err := render("Hi {{.ClientName}}", data)
	require.NoError(t, err)
	assert.Equal(t, "Hi Ada Moreno", out)
}

func TestRenderRejectsBadTemplate(t *testing.T) {
	_, err := render("Hi {{.ClientName", map[string]interface{}{})
	assert.Error(t, err)
}
