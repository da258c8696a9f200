package email

import (
	"testing"

	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_BookingConfirmation(t *testing.T) {
	r := NewTemplateRenderer()
	subject, html, text, err := r.Render("booking_confirmation", &domain.BookingConfirmationEmailData{
		Email:      "fan@example.com",
		EventTitle: "Tom & Jerry <Live>",
		EventSlug:  "tom-jerry-live",
		Date:       "2026-03-27",
		Time:       "10:00",
		Venue:      "Hall A",
		Location:   "Tokyo",
	})
	require.NoError(t, err)
	assert.Equal(t, "You're booked for Tom & Jerry <Live>", subject)
	assert.Contains(t, html, "Tom &amp; Jerry &lt;Live&gt;")
	assert.Contains(t, html, "/events/tom-jerry-live")
	assert.Contains(t, text, "Venue:    Hall A")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("does_not_exist", nil)
	assert.Error(t, err)
}
