// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync/atomic"

	"github.com/bitmark-inc/assettrap/event"
)

// DefaultQueueSize - queue length when none is configured
const DefaultQueueSize = 1000

// Queue - bounded event queue, implements event.Sink
type Queue struct {
	queue   chan event.Event
	dropped uint64
}

// New - create a queue holding up to size events
func New(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		queue: make(chan event.Event, size),
	}
}

// Deposit - queue an event without blocking
func (q *Queue) Deposit(e event.Event) {
	select {
	case q.queue <- e:
	default:
		atomic.AddUint64(&q.dropped, 1)
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan event.Event {
	return q.queue
}

// Dropped - number of events lost to a full queue
func (q *Queue) Dropped() uint64 {
	return atomic.LoadUint64(&q.dropped)
}
