package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	// SNS delivery is optional; without a topic ARN notifications only go
	// to the log sink and the in-app feed.
	AWSRegion   string `env:"AWS_REGION"`
	SNSTopicARN string `env:"SNS_TOPIC_ARN"`
}
