package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMessage(t *testing.T) {
	cases := map[int]string{
		fiber.StatusOK:                  MessageOK,
		fiber.StatusCreated:             MessageCreated,
		fiber.StatusNotFound:            MessageNotFound,
		fiber.StatusTooManyRequests:     MessageTooManyRequests,
		fiber.StatusBadGateway:          MessageInternalServerError,
		fiber.StatusTeapot:              MessageError,
		fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
	}
	for status, want := range cases {
		assert.Equal(t, want, DefaultMessage(status), "status %d", status)
	}
}

func TestWrite_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/created", func(c fiber.Ctx) error { return Created(c, fiber.Map{"id": "x"}) })
	app.Get("/bad", func(c fiber.Ctx) error { return Error(c, 1000, "", nil) })

	resp, err := app.Test(httptest.NewRequest("GET", "/created", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var env Envelope
	require.NoError(t, json.Unmarshal(b, &env))
	assert.Equal(t, fiber.StatusCreated, env.Status)
	assert.Equal(t, MessageCreated, env.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
