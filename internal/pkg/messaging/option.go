package messaging

type consumeOptions struct {
	// concurrency is the number of handler goroutines.
	concurrency int
	// autoAck acks or nacks a message from the handler result.
	autoAck bool
	// queueGroup load-balances messages across consumers sharing the name.
	queueGroup string
	// buffer is the number of delivered messages waiting for a handler.
	buffer int
}

// ConsumeOption configures consumer behavior.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}

	if co.concurrency <= 0 {
		co.concurrency = 1
	}
	if co.buffer <= 0 {
		co.buffer = co.concurrency
	}
	return co
}

// WithConcurrency sets how many handler goroutines process messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithQueueGroup sets the queue group name.
func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithAutoAck controls whether messages are acked/nacked after the handler returns.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}

// WithBuffer sets how many delivered messages may wait for a free handler.
func WithBuffer(n int) ConsumeOption {
	return func(o *consumeOptions) { o.buffer = n }
}
