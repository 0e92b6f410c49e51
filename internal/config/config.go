package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() error {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	// API Configuration
	viper.SetDefault("API_ADDR", ":8080")

	// History and cache are disabled while their addresses are empty
	viper.SetDefault("DB_DRIVER", "pgx")
	viper.SetDefault("DB_DSN", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("CACHE_TTL", "24h")

	// MQTT worker
	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_CLIENT_ID", "wirecalc-worker")

	// AWS Configuration
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_S3_BUCKET", "wirecalc-reports")
	viper.SetDefault("AWS_SNS_TOPIC_ARN", "")
	viper.SetDefault("AWS_DYNAMODB_TABLE", "")
	viper.SetDefault("USE_CLOUD_SERVICES", "false") // Toggle for local vs cloud

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	// Informational-note voltage-drop limits, in percent
	viper.SetDefault("VOLTAGE_DROP_BRANCH_PCT", 3.0)
	viper.SetDefault("VOLTAGE_DROP_TOTAL_PCT", 5.0)

	viper.AutomaticEnv()

	if path := viper.GetString("CONFIG_FILE"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return validate()
}

func validate() error {
	if BranchDropPercent() <= 0 || BranchDropPercent() > 100 {
		return fmt.Errorf("config: VOLTAGE_DROP_BRANCH_PCT must be in (0, 100], got %v", BranchDropPercent())
	}
	if TotalDropPercent() < BranchDropPercent() || TotalDropPercent() > 100 {
		return fmt.Errorf("config: VOLTAGE_DROP_TOTAL_PCT must be in [%v, 100], got %v", BranchDropPercent(), TotalDropPercent())
	}
	if CacheTTL() < 0 {
		return fmt.Errorf("config: CACHE_TTL must not be negative")
	}
	switch DBDriver() {
	case "pgx", "sqlite":
	default:
		return fmt.Errorf("config: DB_DRIVER must be pgx or sqlite, got %q", DBDriver())
	}
	return nil
}

func APIAddr() string         { return viper.GetString("API_ADDR") }
func DBDriver() string        { return viper.GetString("DB_DRIVER") }
func DBDSN() string           { return viper.GetString("DB_DSN") }
func RedisAddr() string       { return viper.GetString("REDIS_ADDR") }
func RedisPassword() string   { return viper.GetString("REDIS_PASSWORD") }
func CacheTTL() time.Duration { return viper.GetDuration("CACHE_TTL") }
func MQTTBroker() string      { return viper.GetString("MQTT_BROKER") }
func MQTTClientID() string    { return viper.GetString("MQTT_CLIENT_ID") }
func AWSRegion() string       { return viper.GetString("AWS_REGION") }
func S3Bucket() string        { return viper.GetString("AWS_S3_BUCKET") }
func SNSTopicArn() string     { return viper.GetString("AWS_SNS_TOPIC_ARN") }
func DynamoDBTable() string   { return viper.GetString("AWS_DYNAMODB_TABLE") }
func UseCloudServices() bool  { return viper.GetBool("USE_CLOUD_SERVICES") }
func LogLevel() string        { return viper.GetString("LOG_LEVEL") }
func LogFormat() string       { return viper.GetString("LOG_FORMAT") }

func BranchDropPercent() float64 { return viper.GetFloat64("VOLTAGE_DROP_BRANCH_PCT") }
func TotalDropPercent() float64  { return viper.GetFloat64("VOLTAGE_DROP_TOTAL_PCT") }
