package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-m string   storage type: postgres | memory
//	-s string   session signing secret
//	-t int      session token validity, hours
//	-prod bool  production mode
//	-o string   allowed CORS origin
//	-rl int     signup requests per window per client
//	-rw int     signup rate window, minutes
//	-own bool   enforce session + ownership on task mutation routes
//
// os.Args is first narrowed with flagx.FilterArgs so flags owned by other
// components (such as -c) do not break parsing. Bool flags should be given
// as -prod=true / -own=false.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-m", "-s", "-t", "-prod", "-o", "-rl", "-rw", "-own"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.StorageType, "m", config.StorageType, "storage type (postgres|memory)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.SessionTokenValidityDuration.Hours()), "session_token_validity_duration (in hours)")

	fs.BoolVar(&config.Production, "prod", config.Production, "production mode")
	fs.StringVar(&config.AllowedOrigin, "o", config.AllowedOrigin, "allowed CORS origin")
	fs.IntVar(&config.SignupRateLimit, "rl", config.SignupRateLimit, "signup requests per window")

	rateWindow := fs.Int("rw", int(config.SignupRateWindow.Minutes()), "signup rate window (in minutes)")

	fs.BoolVar(&config.EnforceTaskOwnership, "own", config.EnforceTaskOwnership, "enforce task ownership")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t and -rw are whole units; only override finer values from a file
	// when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionTokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		case "rw":
			config.SignupRateWindow = time.Duration(*rateWindow) * time.Minute
		}
	})
}
