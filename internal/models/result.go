package models

// StatusAccepted marks a request that passed validation and was handed to
// the configured sender.
const StatusAccepted = "accepted"

// SendResult is the minimal acknowledgment returned for a dispatched message.
type SendResult struct {
	MessageID string  `json:"message_id"`
	Channel   Channel `json:"channel"`
	Status    string  `json:"status"`
}

// HealthStatus is the fixed payload returned by the health endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}

// Healthy reports the service as reachable. It has no failure mode.
func Healthy() HealthStatus {
	return HealthStatus{Status: "ok"}
}
