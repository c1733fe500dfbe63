package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost                    string
	KafkaConsumerGroup           string
	KafkaValidationRequestTopic  string
	KafkaValidationResponseTopic string
	KafkaAllocationRequestTopic  string
	KafkaAllocationResponseTopic string
	KafkaDeallocationTopic       string

	// StatusAwaitTimeout bounds how long a handler waits for a preceding
	// status to be confirmed committed before proceeding anyway.
	StatusAwaitTimeout time.Duration

	// StalledOrderThreshold is the age at which a waiting order counts as
	// stalled.
	StalledOrderThreshold time.Duration
}
