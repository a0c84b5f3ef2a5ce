package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// EventType represents the type of event from the hub
type EventType string

const (
	EventDeviceStateChanged EventType = "deviceStateChanged"
	EventDeviceAdded        EventType = "deviceAdded"
	EventDeviceRemoved      EventType = "deviceRemoved"
	EventSceneCreated       EventType = "sceneCreated"
	EventSceneUpdated       EventType = "sceneUpdated"
	EventSceneDeleted       EventType = "sceneDeleted"
)

// IsSceneEvent reports whether the event concerns a scene resource
func (t EventType) IsSceneEvent() bool {
	switch t {
	case EventSceneCreated, EventSceneUpdated, EventSceneDeleted:
		return true
	}
	return false
}

// Event represents an event from the DIRIGERA hub
type Event struct {
	Type       EventType
	ResourceID string
	// Device class for device events (empty for scene events)
	DeviceType string
	// Scene display name for scene events
	SceneName string
	Data      json.RawMessage
}

// DeviceUpdateEvent contains the changed attributes of a device event
type DeviceUpdateEvent struct {
	ID                string
	DeviceType        string
	IsOn              *bool
	LightLevel        *int
	ColorTemperature  *int
	BatteryPercentage *int
	IsDetected        *bool
	CurrentCO2        *int
}

// EventHandler is called when a batch of events is received
type EventHandler func(events []Event)

// EventSubscription manages a WebSocket connection to the hub for events
type EventSubscription struct {
	hub     *DirigeraHub
	handler EventHandler
	conn    *websocket.Conn
	mu      sync.Mutex
	done    chan struct{}
	running bool

	// Event batching
	eventBatch   []Event
	batchMu      sync.Mutex
	batchTimer   *time.Timer
	batchTimeout time.Duration
}

// NewEventSubscription creates a new event subscription
func NewEventSubscription(hub *DirigeraHub, handler EventHandler) *EventSubscription {
	return &EventSubscription{
		hub:          hub,
		handler:      handler,
		done:         make(chan struct{}),
		batchTimeout: 50 * time.Millisecond,
	}
}

// Start begins listening for events
func (s *EventSubscription) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	go s.run(ctx)
	return nil
}

// Stop stops the event subscription
func (s *EventSubscription) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	close(s.done)

	if s.conn != nil {
		s.conn.Close()
	}
}

// run is the main event loop
func (s *EventSubscription) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		default:
		}

		err := s.connect(ctx)
		if err != nil {
			// Wait before reconnecting
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
			continue
		}

		s.readLoop(ctx)

		// Connection lost, reconnect
		s.mu.Lock()
		if s.conn != nil {
			s.conn.Close()
			s.conn = nil
		}
		s.mu.Unlock()
	}
}

// connect establishes the WebSocket connection
func (s *EventSubscription) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: true},
		HandshakeTimeout: 10 * time.Second,
	}

	url := fmt.Sprintf("wss://%s/v1", hostWithPort(s.hub.host))

	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.hub.token)

	conn, _, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to event stream: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	return nil
}

// readLoop reads events from the WebSocket
func (s *EventSubscription) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		default:
		}

		s.mu.Lock()
		conn := s.conn
		s.mu.Unlock()

		if conn == nil {
			return
		}

		if err := conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			return
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		events := s.parseMessage(message)
		if len(events) > 0 {
			s.batchEvents(events)
		}
	}
}

// parseMessage parses a WebSocket message. The hub sends one event per
// message; the slice return keeps the batching path uniform.
func (s *EventSubscription) parseMessage(message []byte) []Event {
	var raw struct {
		ID   string `json:"id"`
		Time string `json:"time"`
		Type string `json:"type"`
		Data struct {
			ID         string `json:"id"`
			DeviceType string `json:"deviceType"`
			Info       *struct {
				Name string `json:"name"`
			} `json:"info"`
		} `json:"data"`
	}

	if err := json.Unmarshal(message, &raw); err != nil {
		return nil
	}
	if raw.Type == "" || raw.Data.ID == "" {
		return nil
	}

	event := Event{
		Type:       EventType(raw.Type),
		ResourceID: raw.Data.ID,
		DeviceType: raw.Data.DeviceType,
	}
	if raw.Data.Info != nil {
		event.SceneName = raw.Data.Info.Name
	}

	// Re-marshal only the data payload for the handler
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(message, &envelope); err == nil {
		event.Data = envelope.Data
	}

	return []Event{event}
}

// batchEvents adds events to the batch and schedules delivery
func (s *EventSubscription) batchEvents(events []Event) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	s.eventBatch = append(s.eventBatch, events...)

	if s.batchTimer != nil {
		s.batchTimer.Stop()
	}

	s.batchTimer = time.AfterFunc(s.batchTimeout, func() {
		s.deliverBatch()
	})
}

// deliverBatch sends the batched events to the handler
func (s *EventSubscription) deliverBatch() {
	s.batchMu.Lock()
	batch := s.eventBatch
	s.eventBatch = nil
	s.batchMu.Unlock()

	if len(batch) > 0 && s.handler != nil {
		s.handler(batch)
	}
}

// ParseDeviceUpdate parses a device state change event
func ParseDeviceUpdate(event Event) (*DeviceUpdateEvent, error) {
	if event.Type != EventDeviceStateChanged {
		return nil, fmt.Errorf("not a device state event")
	}

	var data struct {
		ID         string `json:"id"`
		DeviceType string `json:"deviceType"`
		Attributes struct {
			IsOn              *bool    `json:"isOn"`
			LightLevel        *float64 `json:"lightLevel"`
			ColorTemperature  *int     `json:"colorTemperature"`
			BatteryPercentage *int     `json:"batteryPercentage"`
			IsDetected        *bool    `json:"isDetected"`
			CurrentCO2        *int     `json:"currentCO2"`
		} `json:"attributes"`
	}

	if err := json.Unmarshal(event.Data, &data); err != nil {
		return nil, err
	}

	update := &DeviceUpdateEvent{
		ID:                data.ID,
		DeviceType:        data.DeviceType,
		IsOn:              data.Attributes.IsOn,
		ColorTemperature:  data.Attributes.ColorTemperature,
		BatteryPercentage: data.Attributes.BatteryPercentage,
		IsDetected:        data.Attributes.IsDetected,
		CurrentCO2:        data.Attributes.CurrentCO2,
	}
	if data.Attributes.LightLevel != nil {
		level := int(*data.Attributes.LightLevel)
		update.LightLevel = &level
	}

	return update, nil
}
