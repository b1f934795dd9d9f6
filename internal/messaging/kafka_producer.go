package messaging

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	"video-catalog-service/internal/config"
	"video-catalog-service/internal/domain/entities"
)

// Event type constants.
const (
	EventTypeVideoCreated   = "video.created"
	EventTypeVideoUpdated   = "video.updated"
	EventTypeVideoDeleted   = "video.deleted"
	EventTypeVideosImported = "videos.imported"
)

// KafkaProducer publishes video lifecycle events.
type KafkaProducer struct {
	topic    string
	producer sarama.SyncProducer
}

// NewKafkaProducer creates a synchronous Kafka producer.
func NewKafkaProducer(cfg config.KafkaConfig) (*KafkaProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_8_1_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, err
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "video-events"
	}

	return &KafkaProducer{
		topic:    topic,
		producer: producer,
	}, nil
}

// Close closes the underlying producer.
func (k *KafkaProducer) Close() error {
	return k.producer.Close()
}

// MessageEvent is the envelope for every published event.
type MessageEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// VideoEventPayload describes a single-record lifecycle event.
type VideoEventPayload struct {
	ID          int    `json:"id"`
	Title       string `json:"title,omitempty"`
	ChannelName string `json:"channelName,omitempty"`
}

// VideosImportedPayload describes a completed bulk import.
type VideosImportedPayload struct {
	Count int `json:"count"`
}

// SendVideoCreated publishes a video.created event.
func (k *KafkaProducer) SendVideoCreated(video entities.Video) error {
	return k.SendEvent(EventTypeVideoCreated, VideoEventPayload{
		ID:          video.ID,
		Title:       video.Title,
		ChannelName: video.ChannelName,
	})
}

// SendVideoUpdated publishes a video.updated event.
func (k *KafkaProducer) SendVideoUpdated(video entities.Video) error {
	return k.SendEvent(EventTypeVideoUpdated, VideoEventPayload{
		ID:          video.ID,
		Title:       video.Title,
		ChannelName: video.ChannelName,
	})
}

// SendVideoDeleted publishes a video.deleted event.
func (k *KafkaProducer) SendVideoDeleted(id int) error {
	return k.SendEvent(EventTypeVideoDeleted, VideoEventPayload{ID: id})
}

// SendVideosImported publishes a videos.imported event.
func (k *KafkaProducer) SendVideosImported(count int) error {
	return k.SendEvent(EventTypeVideosImported, VideosImportedPayload{Count: count})
}

// SendEvent wraps the payload in the event envelope and publishes it.
func (k *KafkaProducer) SendEvent(eventType string, payload interface{}) error {
	event := MessageEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Value: sarama.ByteEncoder(data),
	})
	return err
}
