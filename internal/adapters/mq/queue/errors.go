package queue

import "errors"

// ErrQueueClosed reports an enqueue attempt after shutdown began.
var ErrQueueClosed = errors.New("import queue closed")
