// internal/mqtt/options.go
package mqtt

import (
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/almirdelkic/savevtr/internal/config"
)

const (
	defaultConnectTimeout    = 10 * time.Second
	defaultPublishTimeout    = 5 * time.Second
	defaultSubscribeTimeout  = 5 * time.Second
	defaultDisconnectQuiesce = 1000 // milliseconds
	defaultKeepAlive         = 60 * time.Second
	defaultRetryInterval     = 5 * time.Second
	defaultMaxReconnect      = time.Minute

	maxQoS         = 2
	maxPayloadSize = 1 << 20

	availabilityOnline  = "online"
	availabilityOffline = "offline"
)

// buildClientOptions maps the config onto paho options.
// The broker publishes "offline" on availability if we vanish.
func buildClientOptions(cfg config.MQTTConfig, topics Topics) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(defaultRetryInterval)
	opts.SetMaxReconnectInterval(defaultMaxReconnect)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	// Command handlers wait for the poller; each message gets its own goroutine.
	opts.SetOrderMatters(false)

	opts.SetWill(topics.Availability(), availabilityOffline, cfg.QoS, true)
	return opts
}
