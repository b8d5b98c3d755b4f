package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"bank-mediator/pkg/bank"

	"go.uber.org/zap"
)

const opCheckConnection = "check connection"

const connectedMessage = "Server connected successfully"

// CheckConnection probes the backend. It never returns an error: every
// failure is folded into a status with Connected false and a displayable
// message. A customer count endpoint reports the count; an actuator-style
// {"status":"UP"} body is also understood. Any other 2xx answer, including
// an empty one, means the backend is reachable.
func (c *Client) CheckConnection(ctx context.Context) bank.ConnectivityStatus {
	var body json.RawMessage
	err := c.do(ctx, request{
		op:         opCheckConnection,
		method:     http.MethodGet,
		path:       c.healthURL,
		allowEmpty: true,
	}, &body)

	status := connectivityStatus(body, err)
	c.metrics.RecordConnectivity(status.Connected)
	c.logger.Debug("connectivity checked",
		zap.Bool("connected", status.Connected),
		zap.String("message", status.Message),
	)
	return status
}

func connectivityStatus(body json.RawMessage, err error) bank.ConnectivityStatus {
	if err != nil {
		return bank.ConnectivityStatus{
			Connected: false,
			Message:   bank.UserMessage(err),
		}
	}

	var count int64
	if json.Unmarshal(body, &count) == nil {
		return bank.ConnectivityStatus{
			Connected:     true,
			Message:       connectedMessage,
			CustomerCount: &count,
		}
	}

	var health struct {
		Status string `json:"status"`
	}
	if json.Unmarshal(body, &health) == nil && health.Status != "" {
		if strings.EqualFold(health.Status, "UP") {
			return bank.ConnectivityStatus{Connected: true, Message: connectedMessage}
		}
		return bank.ConnectivityStatus{
			Connected: false,
			Message:   fmt.Sprintf("Server reported status %s", health.Status),
		}
	}

	return bank.ConnectivityStatus{Connected: true, Message: connectedMessage}
}
