package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver ("pgx" or "sqlite3")
//	-c/-config json file path with configs
//	-password-hash-key password hash key
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-descriptor-length expected face descriptor length
//	-verify-threshold 1:1 face match threshold
//	-identify-threshold 1:N face match threshold
//	-identify-timeout 1:N scan timeout (e.g., "5s")
//	-identify-workers number of identify pool workers
//	-recognizer-url base URL of the descriptor extraction service
//	-recognizer-timeout extractor request timeout (e.g., "15s")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var passwordHashKey string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var descriptorLength int
	var verifyThreshold float64
	var identifyThreshold float64
	var identifyTimeout time.Duration
	var identifyWorkers int
	var recognizerURL string
	var recognizerTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "db-driver", "", "Database driver (pgx or sqlite3)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&passwordHashKey, "password-hash-key", "", "Password hash key")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&descriptorLength, "descriptor-length", 0, "Expected face descriptor length")
	flag.Float64Var(&verifyThreshold, "verify-threshold", 0, "1:1 face match threshold")
	flag.Float64Var(&identifyThreshold, "identify-threshold", 0, "1:N face match threshold")
	flag.DurationVar(&identifyTimeout, "identify-timeout", 0, "1:N scan timeout (e.g., 5s)")
	flag.IntVar(&identifyWorkers, "identify-workers", 0, "Number of identify pool workers")
	flag.StringVar(&recognizerURL, "recognizer-url", "", "Descriptor extraction service base URL")
	flag.DurationVar(&recognizerTimeout, "recognizer-timeout", 0, "Extractor request timeout (e.g., 15s)")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			PasswordHashKey: passwordHashKey,
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			TokenDuration:   tokenDuration,
		},
		Matcher: Matcher{
			DescriptorLength:  descriptorLength,
			VerifyThreshold:   verifyThreshold,
			IdentifyThreshold: identifyThreshold,
			IdentifyTimeout:   identifyTimeout,
			IdentifyWorkers:   identifyWorkers,
		},
		Recognizer: Recognizer{
			BaseURL: recognizerURL,
			Timeout: recognizerTimeout,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
