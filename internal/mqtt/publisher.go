// internal/mqtt/publisher.go
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/almirdelkic/savevtr/internal/poller"
	"github.com/almirdelkic/savevtr/internal/status"
	"github.com/almirdelkic/savevtr/internal/unit"
)

type publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// StatePublisher publishes poll results as retained JSON.
// It implements poller.Sink and poller.StatusSink.
type StatePublisher struct {
	pub    publisher
	topics Topics
	qos    byte
}

func NewStatePublisher(c *Client) *StatePublisher {
	return &StatePublisher{pub: c, topics: c.Topics(), qos: c.QoS()}
}

type statePayload struct {
	Unit   string          `json:"unit"`
	At     time.Time       `json:"at"`
	OK     bool            `json:"ok"`
	State  unit.Snapshot   `json:"state"`
	Status json.RawMessage `json:"status"`
}

// Deliver publishes the snapshot on the state topic and the health on the
// status topic.
func (p *StatePublisher) Deliver(res poller.PollResult) error {
	st, err := status.Encode(res.Status)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(statePayload{
		Unit:   res.UnitID,
		At:     res.At.UTC(),
		OK:     res.OK,
		State:  res.Snapshot,
		Status: st,
	})
	if err != nil {
		return fmt.Errorf("mqtt: encode state: %w", err)
	}
	if err := p.pub.Publish(p.topics.State(), payload, p.qos, true); err != nil {
		return err
	}
	return p.pub.Publish(p.topics.Status(), st, p.qos, true)
}

// DeliverStatus publishes the health alone.
func (p *StatePublisher) DeliverStatus(_ string, s status.Snapshot) error {
	st, err := status.Encode(s)
	if err != nil {
		return err
	}
	return p.pub.Publish(p.topics.Status(), st, p.qos, true)
}
