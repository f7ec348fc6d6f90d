package config

type App struct {
	Port          string `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret     string `envconfig:"JWT_SECRET" default:"local_dev_secret"`
	Env           string `envconfig:"APP_ENV" default:"dev"`
	MaxExtensions int    `envconfig:"RENTAL_MAX_EXTENSIONS" default:"2"`
	ExtensionDays int    `envconfig:"RENTAL_EXTENSION_DAYS" default:"7"`
	HoldHours     int    `envconfig:"RENTAL_HOLD_HOURS" default:"24"`
}
