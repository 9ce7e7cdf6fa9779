package event

// HeaderCorrelationID carries the request correlation ID across the broker.
const HeaderCorrelationID string = "cID"
