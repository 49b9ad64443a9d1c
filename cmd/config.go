package cmd

import "fmt"

// Config carries every setting the application reads from the environment.
type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
}

// DBConnectionString renders the postgres DSN.
func (c Config) DBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
