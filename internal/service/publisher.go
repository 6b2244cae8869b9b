package service

// Publisher sends domain events to the message broker. Services skip
// publishing when it is nil.
type Publisher interface {
	Publish(routingKey string, payload any) error
}
