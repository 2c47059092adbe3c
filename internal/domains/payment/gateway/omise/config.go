package omise

import "time"

// Config holds the Omise API credentials. The secret key authenticates
// server-side calls; the public key is only ever used by the
// storefront to tokenize cards and is carried here for completeness.
type Config struct {
	PublicKey string
	SecretKey string
	APIURL    string
	Timeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.APIURL == "" {
		c.APIURL = "https://api.omise.co"
	}
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}
