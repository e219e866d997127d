package kafka

import (
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/kelseyhightower/envconfig"
)

// Имена подключений в списке KafkaConfigs
const (
	ChartCalculatedName  = "chart_calculated"  // продюсер chart.calculated
	PaymentSucceededName = "payment_succeeded" // продюсер payment.succeeded
	PaymentEventsName    = "payment_events"    // консьюмер payment.events
)

// Config конфигурация для Kafka producer/consumer
type Config struct {
	Brokers          string `envconfig:"BROKERS"`           // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC"`             // название топика
	ConsumerGroup    string `envconfig:"CONSUMER_GROUP"`    // consumer group (только для consumer)
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	if c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	brokers := strings.Split(c.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}

// Validate проверяет, что подключение можно использовать
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("kafka config is empty")
	}
	if c.Topic == "" {
		return fmt.Errorf("kafka topic is required")
	}
	return nil
}

// NewSaramaConfig общая часть настроек sarama для продюсера и консьюмера
func (c *Config) NewSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()

	if c.SecurityProtocol == "SASL_SSL" || c.SecurityProtocol == "SASL_PLAINTEXT" {
		config.Net.SASL.Enable = true
		config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		if c.SASLMechanism == "SCRAM-SHA-256" {
			config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
		}
		config.Net.SASL.User = c.SASLUsername
		config.Net.SASL.Password = c.SASLPassword
		// TLS только для SASL_SSL
		if c.SecurityProtocol == "SASL_SSL" {
			config.Net.TLS.Enable = true
		}
	}

	return config
}

// KafkaConfigs конфигурация для нескольких Kafka топиков. COUNT=0 выключает Kafka
type KafkaConfigs struct {
	Count int           `envconfig:"COUNT" default:"0"`
	List  []KafkaConfig `envconfig:"-"`
}

// KafkaConfig конфигурация одного Kafka подключения
type KafkaConfig struct {
	Name   string  `envconfig:"NAME"` // chart_calculated, payment_succeeded, payment_events
	Config *Config `envconfig:"CONFIG"`
}

// Load загружает конфигурацию Kafka из переменных окружения
func (kc *KafkaConfigs) Load(envPrefix string) error {
	kc.List = make([]KafkaConfig, kc.Count)
	for i := 0; i < kc.Count; i++ {
		prefix := fmt.Sprintf("%s_KAFKA_%d", envPrefix, i) // ASTRO_SITE_KAFKA_0, ASTRO_SITE_KAFKA_1, ...
		var kafkaCfg KafkaConfig
		if err := envconfig.Process(prefix, &kafkaCfg); err != nil {
			return fmt.Errorf("failed to load kafka config %d: %w", i, err)
		}
		if kafkaCfg.Name == "" {
			return fmt.Errorf("kafka config %d: NAME is required", i)
		}
		kc.List[i] = kafkaCfg
	}
	return nil
}

// Find возвращает конфигурацию по имени или nil
func (kc *KafkaConfigs) Find(name string) *Config {
	if kc == nil {
		return nil
	}
	for _, item := range kc.List {
		if item.Name == name {
			return item.Config
		}
	}
	return nil
}
