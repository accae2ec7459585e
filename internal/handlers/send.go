package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enviador/messaging-gateway/internal/models"
)

// Dispatcher routes a raw send payload to the channel that should handle it.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload []byte) (*models.SendResult, error)
	DispatchChannel(ctx context.Context, channel models.Channel, payload []byte) (*models.SendResult, error)
}

// Send handles the generic send endpoint, selecting the channel from the
// payload's discriminator field.
func Send(dispatcher Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		payload, err := readPayload(c)
		if err != nil {
			return err
		}
		result, err := dispatcher.Dispatch(c.Request().Context(), payload)
		return respond(c, result, err)
	}
}

// SendEmail handles the email-pinned send endpoint.
func SendEmail(dispatcher Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		payload, err := readPayload(c)
		if err != nil {
			return err
		}
		result, err := dispatcher.DispatchChannel(c.Request().Context(), models.ChannelEmail, payload)
		return respond(c, result, err)
	}
}

// SendWhatsApp handles the whatsapp-pinned send endpoint.
func SendWhatsApp(dispatcher Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		payload, err := readPayload(c)
		if err != nil {
			return err
		}
		result, err := dispatcher.DispatchChannel(c.Request().Context(), models.ChannelWhatsApp, payload)
		return respond(c, result, err)
	}
}

func readPayload(c echo.Context) ([]byte, error) {
	body := c.Request().Body
	defer body.Close()

	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return payload, nil
}

// respond maps dispatcher outcomes onto the wire contract: client input
// errors become a 400 carrying the error kind and detail, anything else
// bubbles to the framework error handler.
func respond(c echo.Context, result *models.SendResult, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, result)
	}

	var dispatchErr *models.DispatchError
	if errors.As(err, &dispatchErr) {
		return c.JSON(http.StatusBadRequest, dispatchErr)
	}
	if errors.Is(err, models.ErrMalformedPayload) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON")
	}
	return err
}
