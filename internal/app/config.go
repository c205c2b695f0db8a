// Package app собирает сервисы системы бронирования из их зависимостей
// и управляет их жизненным циклом: HTTP-слушатели, ops-слушатель с метриками
// и health-чеками, graceful shutdown.
package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config описывает настройки запуска одного сервиса.
// Все значения переопределяются переменными окружения HB_*.
type Config struct {
	// HTTPAddr — адрес основного API.
	HTTPAddr string
	// OpsAddr — адрес служебного слушателя: /metrics, /manage/health, /livez, /readyz.
	OpsAddr string
	// PostgresDSN — подключение к PostgreSQL; пустое значение включает in-memory хранилище.
	PostgresDSN string

	// Адреса внутренних сервисов (используются только гейтвеем).
	ReservationURL string
	PaymentURL     string
	LoyaltyURL     string
	// ClientTimeout — таймаут одного вызова внутреннего сервиса.
	ClientTimeout time.Duration

	// KafkaBrokers — список брокеров через запятую; пустое значение отключает Kafka.
	KafkaBrokers string
}

// DefaultGatewayConfig возвращает адреса гейтвея по умолчанию.
func DefaultGatewayConfig() Config {
	return Config{
		HTTPAddr:       ":8080",
		OpsAddr:        ":9090",
		ReservationURL: "http://localhost:8070",
		PaymentURL:     "http://localhost:8060",
		LoyaltyURL:     "http://localhost:8050",
		ClientTimeout:  5 * time.Second,
	}
}

// DefaultReservationConfig возвращает адреса reservation-сервиса по умолчанию.
func DefaultReservationConfig() Config {
	return Config{HTTPAddr: ":8070", OpsAddr: ":9091"}
}

// DefaultPaymentConfig возвращает адреса payment-сервиса по умолчанию.
func DefaultPaymentConfig() Config {
	return Config{HTTPAddr: ":8060", OpsAddr: ":9092"}
}

// DefaultLoyaltyConfig возвращает адреса loyalty-сервиса по умолчанию.
func DefaultLoyaltyConfig() Config {
	return Config{HTTPAddr: ":8050", OpsAddr: ":9093"}
}

// LoadConfig накладывает переменные окружения поверх значений по умолчанию.
// .env подхватывается, если лежит рядом с бинарём; его отсутствие не ошибка.
func LoadConfig(defaults Config) Config {
	_ = godotenv.Load()

	cfg := defaults
	if v := envValue("HB_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := envValue("HB_OPS_ADDR"); v != "" {
		cfg.OpsAddr = v
	}
	if v := envValue("HB_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := envValue("HB_RESERVATION_URL"); v != "" {
		cfg.ReservationURL = v
	}
	if v := envValue("HB_PAYMENT_URL"); v != "" {
		cfg.PaymentURL = v
	}
	if v := envValue("HB_LOYALTY_URL"); v != "" {
		cfg.LoyaltyURL = v
	}
	if v := envValue("HB_CLIENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ClientTimeout = d
		} else {
			log.WithField("value", v).Warn("invalid HB_CLIENT_TIMEOUT, using default")
		}
	}
	if v := envValue("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}

	return cfg
}

func envValue(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
