package eventhandlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"ugc-monitor/models"
	"ugc-monitor/services"
)

// KafkaHandler consumes scan requests from other systems. Messages are
// plain-text commands:
//
//	ScanKeyword:<keyword>
//	ScanSong:<song name>|<artist name>
type KafkaHandler struct {
	Reader *kafka.Reader
	Scan   *services.ScanService
}

func NewKafkaHandler(brokers []string, topic, groupID string, scan *services.ScanService) *KafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &KafkaHandler{Reader: reader, Scan: scan}
}

func (kh *KafkaHandler) Start() {
	defer kh.Reader.Close()
	for {
		m, err := kh.Reader.ReadMessage(context.Background())
		if err != nil {
			log.Printf("[Kafka] error reading message: %v", err)
			time.Sleep(1 * time.Second)
			continue
		}
		log.Printf("[Kafka] received message: %s", string(m.Value))
		kh.processMessage(string(m.Value))
	}
}

func (kh *KafkaHandler) processMessage(message string) {
	ctx := context.Background()
	switch {
	case strings.HasPrefix(message, "ScanKeyword:"):
		keyword := strings.TrimSpace(message[len("ScanKeyword:"):])
		if keyword == "" {
			log.Println("[Kafka] empty keyword in scan request")
			return
		}
		sum := kh.Scan.ScanKeywords(ctx, []string{keyword})
		log.Printf("[Kafka] keyword scan %q: %d found, %d new", keyword, sum.TotalFound, sum.TotalNew)

	case strings.HasPrefix(message, "ScanSong:"):
		parts := strings.SplitN(message[len("ScanSong:"):], "|", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			log.Println("[Kafka] invalid song scan request format")
			return
		}
		song := models.Song{
			SongName:   strings.TrimSpace(parts[0]),
			ArtistName: strings.TrimSpace(parts[1]),
		}
		sum := kh.Scan.ScanSongs(ctx, []models.Song{song})
		log.Printf("[Kafka] song scan %q: %d found, %d new", song.SongName, sum.TotalFound, sum.TotalNew)

	default:
		log.Printf("[Kafka] ignoring unknown message")
	}
}

// AlertPublisher publishes critical findings so downstream consumers
// (takedown tooling, dashboards) can react to them.
type AlertPublisher struct {
	Writer *kafka.Writer
}

func NewAlertPublisher(brokers []string, topic string) *AlertPublisher {
	return &AlertPublisher{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// CriticalFinding publishes a CriticalFinding event for a stored video.
func (ap *AlertPublisher) CriticalFinding(v *models.Video) {
	msg := fmt.Sprintf("CriticalFinding:%s:%d:%s", v.VideoID, v.RiskScore, v.VideoURL)
	err := ap.Writer.WriteMessages(context.Background(), kafka.Message{Value: []byte(msg)})
	if err != nil {
		log.Printf("[Kafka] failed to publish critical finding for %s: %v", v.VideoID, err)
	}
}

func (ap *AlertPublisher) Close() error {
	return ap.Writer.Close()
}
