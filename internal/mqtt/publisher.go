// Package mqtt publishes refreshed conditions to a broker so home
// automation setups can react to the weather (close the blinds when the sun
// comes out, warn on incoming storms) without polling this service.
package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

type Client struct {
	cli         mqtt.Client
	topicPrefix string
}

// update is the wire shape published per city; retained so late
// subscribers immediately see the latest conditions.
type update struct {
	City      string  `json:"city"`
	Condition string  `json:"condition"`
	TempC     float64 `json:"temp_c"`
	TimeOfDay string  `json:"time_of_day"`
	USAQI     int     `json:"us_aqi"`
	At        int64   `json:"at"`
}

func New(brokerURL, topicPrefix string) (*Client, error) {
	u, err := url.Parse(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("parse broker url: %w", err)
	}

	opts := mqtt.NewClientOptions()
	server := u.Host
	switch u.Scheme {
	case "mqtt", "tcp":
		server = "tcp://" + server
	case "ssl", "tls":
		server = "ssl://" + server
	case "ws", "wss":
		server = u.Scheme + "://" + server + u.Path
	}
	opts.AddBroker(server)
	opts.SetClientID("mausam-" + time.Now().Format("150405.000"))
	opts.OnConnect = func(mqtt.Client) { slog.Info("mqtt connected", "broker", brokerURL) }
	opts.OnConnectionLost = func(_ mqtt.Client, err error) { slog.Error("mqtt connection lost", "error", err) }
	if u.User != nil {
		pw, _ := u.User.Password()
		opts.SetUsername(u.User.Username())
		opts.SetPassword(pw)
	}
	if u.Scheme == "ssl" || u.Scheme == "tls" || u.Scheme == "wss" {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
	}

	cli := mqtt.NewClient(opts)
	if t := cli.Connect(); t.Wait() && t.Error() != nil {
		return nil, fmt.Errorf("connect broker: %w", t.Error())
	}
	return &Client{cli: cli, topicPrefix: strings.TrimRight(topicPrefix, "/")}, nil
}

// PublishWeather emits the city's latest snapshot on
// "<prefix>/<city-slug>", retained.
func (c *Client) PublishWeather(city string, view models.DashboardView) error {
	payload, err := json.Marshal(update{
		City:      city,
		Condition: view.ConditionKey,
		TempC:     view.Current.TempC,
		TimeOfDay: view.TimeOfDay,
		USAQI:     view.Air.USAQI,
		At:        view.GeneratedAt,
	})
	if err != nil {
		return err
	}

	topic := c.topicPrefix + "/" + slug(city)
	t := c.cli.Publish(topic, 0, true, payload)
	if t.Wait() && t.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, t.Error())
	}
	return nil
}

func (c *Client) Close() {
	c.cli.Disconnect(250)
}

func slug(city string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(city)), " ", "-")
}
