// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/counter"
)

// Sink - receiver for domain events
type Sink interface {
	Record(Event)
}

// LogSink - writes each event as a JSON log line with a sequence number
type LogSink struct {
	log      *logger.L
	sequence counter.Counter
}

// NewLogSink - create a sink writing to a named log category
func NewLogSink(name string) *LogSink {
	return &LogSink{
		log: logger.New(name),
	}
}

// Record - log one event
func (s *LogSink) Record(e Event) {
	n := s.sequence.Increment()

	data, err := json.Marshal(e)
	if nil != err {
		s.log.Errorf("marshal event: %s  error: %s", e.Name(), err)
		return
	}
	s.log.Infof("%d %s %s", n, e.Name(), data)
}

// Collector - accumulates events in memory, for tests
type Collector struct {
	Events []Event
}

// Record - append one event
func (c *Collector) Record(e Event) {
	c.Events = append(c.Events, e)
}

// Names - the event type tags in emission order
func (c *Collector) Names() []string {
	names := make([]string, 0, len(c.Events))
	for _, e := range c.Events {
		names = append(names, e.Name())
	}
	return names
}

// NopSink - discards all events
type NopSink struct{}

// Record - discard one event
func (NopSink) Record(Event) {}
